package v1

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"conso/internal/model"
)

// 上传批次的保留时长，超时后允许被清理
const uploadTTL = 2 * time.Hour

// uploadBatch 一次上传的文件批次
type uploadBatch struct {
	dir       string
	fileNames []string // 保持上传顺序
	expiresAt time.Time
}

// uploadStore 上传批次的内存注册表，文件本体落在数据目录
type uploadStore struct {
	mu    sync.Mutex
	items map[string]uploadBatch
}

func newUploadStore() *uploadStore {
	return &uploadStore{
		items: make(map[string]uploadBatch),
	}
}

func (s *uploadStore) put(id, dir string, fileNames []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	s.items[id] = uploadBatch{
		dir:       dir,
		fileNames: fileNames,
		expiresAt: time.Now().Add(uploadTTL),
	}
}

func (s *uploadStore) get(id string) (uploadBatch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[id]
	if !ok || time.Now().After(v.expiresAt) {
		return uploadBatch{}, false
	}
	return v, true
}

func (s *uploadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
			_ = os.RemoveAll(v.dir)
		}
	}
}

// diskFile 落盘文件的 UploadedFile 适配，可多次 Open
type diskFile struct {
	name string
	path string
}

func (f diskFile) Name() string { return f.name }

func (f diskFile) Open() (io.ReadCloser, error) { return os.Open(f.path) }

// files 批次内文件按上传顺序的句柄列表
func (b uploadBatch) files() []model.UploadedFile {
	out := make([]model.UploadedFile, 0, len(b.fileNames))
	for _, name := range b.fileNames {
		out = append(out, diskFile{
			name: name,
			path: filepath.Join(b.dir, name),
		})
	}
	return out
}

// UploadedFileInfo 上传结果中单个文件的描述
type UploadedFileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Upload 接收一批上传文件，返回批次 ID
// POST /api/uploads  (multipart, 字段名 files)
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	uploadID := uuid.NewString()
	dir := filepath.Join(h.dataDir, "uploads", uploadID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建上传目录失败"})
		return
	}

	infos := make([]UploadedFileInfo, 0, len(files))
	names := make([]string, 0, len(files))
	for _, fh := range files {
		// 只取文件名部分，避免路径穿越
		name := filepath.Base(fh.Filename)
		if name == "." || name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的文件名"})
			return
		}
		if err := c.SaveUploadedFile(fh, filepath.Join(dir, name)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("保存文件 %s 失败", name)})
			return
		}
		names = append(names, name)
		infos = append(infos, UploadedFileInfo{Name: name, Size: fh.Size})
	}

	h.uploads.put(uploadID, dir, names)

	c.JSON(http.StatusOK, gin.H{
		"uploadId": uploadID,
		"files":    infos,
	})
}
