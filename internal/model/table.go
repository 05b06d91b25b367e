package model

// Table 内存中的表格数据：有序列名 + 按列位置对齐的行
// 单元格值为标量（string/float64/bool 等），nil 表示空缺
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewTable 创建空表
func NewTable(columns ...string) *Table {
	return &Table{
		Columns: columns,
		Rows:    [][]any{},
	}
}

// RowCount 行数
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// IsEmpty 是否没有任何数据行
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// ColumnIndex 返回列名对应的下标，不存在返回 -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AddConstColumn 追加一列，所有行填充同一个值
// 同名列已存在时覆盖该列的所有单元格
func (t *Table) AddConstColumn(name string, value any) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		t.Columns = append(t.Columns, name)
		idx = len(t.Columns) - 1
	}
	for i := range t.Rows {
		for len(t.Rows[i]) < len(t.Columns) {
			t.Rows[i] = append(t.Rows[i], nil)
		}
		t.Rows[i][idx] = value
	}
}

// Append 把另一张表的行并入当前表（列名取并集）
// 已有列保持原位置，新列追加到末尾，缺失单元格填 nil
func (t *Table) Append(other *Table) {
	if other == nil {
		return
	}

	// 扩展列集合
	srcIdx := make([]int, len(other.Columns))
	for i, name := range other.Columns {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			t.Columns = append(t.Columns, name)
			idx = len(t.Columns) - 1
		}
		srcIdx[i] = idx
	}

	// 旧行补齐新增的列
	for i := range t.Rows {
		for len(t.Rows[i]) < len(t.Columns) {
			t.Rows[i] = append(t.Rows[i], nil)
		}
	}

	// 按列名映射搬运新行
	for _, srcRow := range other.Rows {
		row := make([]any, len(t.Columns))
		for i, v := range srcRow {
			if i >= len(srcIdx) {
				break
			}
			row[srcIdx[i]] = v
		}
		t.Rows = append(t.Rows, row)
	}
}

// Cell 读取单元格，越界返回 nil
func (t *Table) Cell(row int, column string) any {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return nil
	}
	if idx >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][idx]
}
