package attachment

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// InitS3 初始化 S3 客户端，兼容 MinIO 等自建对象存储
func (s *Storage) InitS3(ctx context.Context) error {
	if s.Bucket == "" {
		return fmt.Errorf("S3 bucket 未配置")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, ""),
		),
	)
	if err != nil {
		return fmt.Errorf("加载 S3 配置失败: %w", err)
	}

	s.s3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
		}
		o.UsePathStyle = s.UsePathStyle
	})
	return nil
}

// objectKey 生成唯一对象 key（时间戳 + 原始扩展名，带前缀）
func (s *Storage) objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	unique := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	key := path.Join(strings.Trim(s.Prefix, "/"), unique)
	return strings.TrimLeft(key, "/")
}

// fileURL 拼出上传成功后的访问 URL
func (s *Storage) fileURL(key string) string {
	base := strings.TrimRight(s.S3BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(s.Endpoint, "/")
	}
	if s.UsePathStyle {
		return base + "/" + s.Bucket + "/" + key
	}
	return base + "/" + key
}

// UploadFile 服务端中转上传到对象存储，返回访问 URL
func (s *Storage) UploadFile(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if s.s3Client == nil {
		if err := s.InitS3(ctx); err != nil {
			return "", err
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	key := s.objectKey(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploader := manager.NewUploader(s.s3Client)
	if _, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("上传对象失败: %w", err)
	}

	return s.fileURL(key), nil
}

// PresignedUploadRequest 预签名上传请求参数
type PresignedUploadRequest struct {
	Filename    string // 原始文件名
	ContentType string // 文件 MIME 类型
	ExpiresIn   int64  // 过期时间（秒），默认 15 分钟
}

// PresignedUploadResponse 预签名上传响应
type PresignedUploadResponse struct {
	UploadURL string            `json:"upload_url"` // 预签名上传 URL
	FileKey   string            `json:"file_key"`   // 对象存储中的文件 key
	FileURL   string            `json:"file_url"`   // 上传成功后的访问 URL
	ExpiresAt time.Time         `json:"expires_at"` // 过期时间
	Method    string            `json:"method"`     // HTTP 方法（通常是 PUT）
	Headers   map[string]string `json:"headers"`    // 需要在上传时携带的 Headers
}

// GeneratePresignedUploadURL 生成预签名上传 URL
// 允许前端直接上传文件到 S3，无需经过后端中转
func (s *Storage) GeneratePresignedUploadURL(ctx context.Context, req PresignedUploadRequest) (*PresignedUploadResponse, error) {
	if s.s3Client == nil {
		if err := s.InitS3(ctx); err != nil {
			return nil, fmt.Errorf("初始化 S3 客户端失败: %w", err)
		}
	}

	if req.Filename == "" {
		return nil, fmt.Errorf("文件名不能为空")
	}

	if req.ExpiresIn <= 0 {
		req.ExpiresIn = 900 // 15 分钟
	}

	key := s.objectKey(req.Filename)

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	presignClient := s3.NewPresignClient(s.s3Client)

	presignedReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(req.ExpiresIn) * time.Second
	})

	if err != nil {
		return nil, fmt.Errorf("生成预签名 URL 失败: %w", err)
	}

	response := &PresignedUploadResponse{
		UploadURL: presignedReq.URL,
		FileKey:   key,
		FileURL:   s.fileURL(key),
		ExpiresAt: time.Now().Add(time.Duration(req.ExpiresIn) * time.Second),
		Method:    presignedReq.Method,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
	}

	for k, v := range presignedReq.SignedHeader {
		if len(v) > 0 {
			response.Headers[k] = v[0]
		}
	}

	return response, nil
}

// GeneratePresignedDownloadURL 生成预签名下载 URL，用于访问私有对象
func (s *Storage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn int64) (string, error) {
	if s.s3Client == nil {
		if err := s.InitS3(ctx); err != nil {
			return "", fmt.Errorf("初始化 S3 客户端失败: %w", err)
		}
	}

	if expiresIn <= 0 {
		expiresIn = 3600 // 默认 1 小时
	}

	presignClient := s3.NewPresignClient(s.s3Client)

	presignedReq, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(expiresIn) * time.Second
	})

	if err != nil {
		return "", fmt.Errorf("生成预签名下载 URL 失败: %w", err)
	}

	return presignedReq.URL, nil
}
