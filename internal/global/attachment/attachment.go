// Package attachment 保存更新记录的进度附件（截图等）
// 本地目录保存为默认方式，配置了 S3 时走对象存储
package attachment

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"activity-tracker-system/config"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Storage struct {
	SaveDir string // 本地保存目录
	BaseURL string // 访问基础URL

	// S3 配置，来自 config.S3
	Endpoint     string
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	Prefix       string
	UsePathStyle bool
	S3BaseURL    string

	s3Client *s3.Client
}

// NewStorage 从全局配置创建附件存储实例
func NewStorage() *Storage {
	cfg := config.Get()
	return &Storage{
		SaveDir:      cfg.Attachment.Dir,
		BaseURL:      cfg.Attachment.BaseURL,
		Endpoint:     cfg.S3.Endpoint,
		Bucket:       cfg.S3.Bucket,
		Region:       cfg.S3.Region,
		AccessKey:    cfg.S3.AccessKey,
		SecretKey:    cfg.S3.SecretAccessKey,
		Prefix:       cfg.S3.Prefix,
		UsePathStyle: cfg.S3.UsePathStyle,
		S3BaseURL:    cfg.S3.BaseURL,
	}
}

// S3Enabled 是否配置了对象存储
func (s *Storage) S3Enabled() bool {
	return s.Bucket != ""
}

// SaveFile 保存上传文件到本地并返回访问URL
func (s *Storage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(s.SaveDir, os.ModePerm); err != nil {
		return "", err
	}

	// 时间戳文件名，保留原扩展名
	ext := filepath.Ext(fileHeader.Filename)
	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	filePath := filepath.Join(s.SaveDir, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return s.BaseURL + "/" + filename, nil
}
