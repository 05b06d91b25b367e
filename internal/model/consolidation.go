package model

import "io"

// FileKind 上传文件的声明类型
type FileKind string

const (
	FileKindCSV   FileKind = "csv"
	FileKindExcel FileKind = "excel"
)

// Valid 是否为支持的文件类型
func (k FileKind) Valid() bool {
	return k == FileKindCSV || k == FileKindExcel
}

// 固定的溯源列名
const (
	ProvenanceFilename  = "Filename"
	ProvenanceSheetName = "Sheet Name"
)

// UploadedFile 上传文件句柄：只读，由调用方持有生命周期
// 同一个文件可能被多次 Open（按 sheet 读取时）
type UploadedFile interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// SheetSelection 文件名 -> 待合并 sheet 名集合（已去重，保持加入顺序）
type SheetSelection map[string][]string

// Add 加入一个 (文件, sheet) 选择，重复加入不产生副本
func (s SheetSelection) Add(fileName, sheetName string) {
	for _, existing := range s[fileName] {
		if existing == sheetName {
			return
		}
	}
	s[fileName] = append(s[fileName], sheetName)
}

// Contains 是否已包含该 (文件, sheet) 对
func (s SheetSelection) Contains(fileName, sheetName string) bool {
	for _, existing := range s[fileName] {
		if existing == sheetName {
			return true
		}
	}
	return false
}

// ConsolidationResult 一次合并运行的产物
// Warnings 记录每个失败单元的人类可读消息，批次不会因单个失败而中止
type ConsolidationResult struct {
	Table    *Table   `json:"table"`
	Warnings []string `json:"warnings"`
}

// Empty 是否为"没有可显示的数据"的正常空结果
func (r *ConsolidationResult) Empty() bool {
	return r == nil || r.Table.IsEmpty()
}
