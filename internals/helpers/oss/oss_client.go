package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// Object directories inside the bucket. The hosted front end used two storage
// buckets; here they are prefixes on one OSS bucket.
const (
	DirSignatures    = "signatures"
	DirExcuseLetters = "excuse-letters"
)

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	BucketName string
	Endpoint   string
	Prefix     string
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

// NewOSSServiceFromEnv builds the client from ALI_OSS_* env vars.
// prefix is optional (e.g. "uploads").
func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := normalizeEndpoint(getEnv("ALI_OSS_ENDPOINT"))
	keyID := getEnv("ALI_OSS_ACCESS_KEY")
	secret := getEnv("ALI_OSS_SECRET_KEY")
	bucketName := getEnv("ALI_OSS_BUCKET")

	if endpoint == "" || keyID == "" || secret == "" || bucketName == "" {
		return nil, fmt.Errorf("OSS env is incomplete (ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET)")
	}

	cli, err := oss.New(endpoint, keyID, secret)
	if err != nil {
		return nil, err
	}
	bucket, err := cli.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	return &OSSService{
		Client:     cli,
		Bucket:     bucket,
		BucketName: bucketName,
		Endpoint:   endpoint,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

func normalizeEndpoint(e string) string {
	e = strings.TrimSpace(e)
	e = strings.TrimPrefix(e, "https://")
	e = strings.TrimPrefix(e, "http://")
	return strings.TrimRight(e, "/")
}

/* =======================================================================
   Uploads
======================================================================= */

// UploadBytes writes raw bytes under dir with a generated unique key.
func (s *OSSService) UploadBytes(ctx context.Context, dir, filename string, data []byte, contentType string) (key string, err error) {
	key = s.buildObjectKey(dir, filename)
	opts := []oss.Option{
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return "", err
	}
	return key, nil
}

// UploadFromFormFile streams a multipart file as-is (no re-encode).
func (s *OSSService) UploadFromFormFile(ctx context.Context, dir string, fh *multipart.FileHeader) (key, contentType string, err error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	contentType, body, err := detectContentType(src, fh.Filename)
	if err != nil {
		return "", "", err
	}

	key = s.buildObjectKey(dir, fh.Filename)
	opts := []oss.Option{
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	}
	if err := s.Bucket.PutObject(key, body, opts...); err != nil {
		return "", "", err
	}
	return key, contentType, nil
}

/* =======================================================================
   Deletes (rollback path)
======================================================================= */

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	err := s.Bucket.DeleteObject(key)
	if err != nil && isNotFound(err) {
		return nil
	}
	return err
}

func (s *OSSService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := ExtractKeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	return s.DeleteObject(ctx, key)
}

func (s *OSSService) DeleteManyByPublicURL(ctx context.Context, publicURLs []string) (deleted []string, failed map[string]error) {
	failed = map[string]error{}
	for _, u := range publicURLs {
		if err := s.DeleteByPublicURL(ctx, u); err != nil {
			failed[u] = err
			continue
		}
		deleted = append(deleted, u)
	}
	return deleted, failed
}

// ListKeys returns object keys under prefix older than cutoff (reaper support).
func (s *OSSService) ListKeys(ctx context.Context, prefix string, olderThan time.Time) ([]string, error) {
	var keys []string
	marker := ""
	for {
		res, err := s.Bucket.ListObjects(oss.Prefix(prefix), oss.Marker(marker), oss.MaxKeys(1000))
		if err != nil {
			return nil, err
		}
		for _, obj := range res.Objects {
			if obj.LastModified.Before(olderThan) {
				keys = append(keys, obj.Key)
			}
		}
		if !res.IsTruncated {
			break
		}
		marker = res.NextMarker
	}
	return keys, nil
}

/* =======================================================================
   URLs & keys
======================================================================= */

func (s *OSSService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if base := getEnv("ALI_OSS_PUBLIC_BASE"); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	if s.Endpoint == "" || s.BucketName == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, s.Endpoint, key)
}

func ExtractKeyFromPublicURL(publicURL string) (string, error) {
	if publicURL == "" {
		return "", fmt.Errorf("empty url")
	}
	if base := getEnv("ALI_OSS_PUBLIC_BASE"); base != "" {
		base = strings.TrimRight(base, "/") + "/"
		if strings.HasPrefix(publicURL, base) {
			return strings.TrimPrefix(publicURL, base), nil
		}
	}
	u := publicURL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "/"); i >= 0 && i+1 < len(u) {
		return u[i+1:], nil
	}
	return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
}

/* =======================================================================
   Misc utils
======================================================================= */

func (s *OSSService) buildObjectKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	if base == "" {
		base = "file"
	}
	ts := time.Now().Format("20060102_150405")

	parts := make([]string, 0, 3)
	if s.Prefix != "" {
		parts = append(parts, s.Prefix)
	}
	if d := strings.Trim(dir, "/"); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, fmt.Sprintf("%s_%s_%s%s", slugify(base), ts, randHex(3), ext))
	return strings.Join(parts, "/")
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(" ", "-", "_", "-")
	s = r.Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// detectContentType resolves contentType from extension + 512B sniff, with
// hard overrides for formats the sniffer misses.
func detectContentType(src multipart.File, filename string) (string, io.Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	ct := mime.TypeByExtension(ext)

	head := make([]byte, 512)
	n, _ := io.ReadFull(io.LimitReader(src, 512), head)

	if n > 0 {
		detected := http.DetectContentType(head[:n])
		if ct == "" || ct == "application/octet-stream" {
			ct = detected
		}
	}

	switch ext {
	case ".webp":
		ct = "image/webp"
	case ".svg":
		ct = "image/svg+xml"
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return "", nil, err
		}
		return ct, src, nil
	}
	combined := append([]byte{}, head[:n]...)
	body, _ := io.ReadAll(src)
	combined = append(combined, body...)
	return ct, bytes.NewReader(combined), nil
}

func isNotFound(err error) bool {
	if e, ok := err.(oss.ServiceError); ok {
		return e.StatusCode == 404
	}
	return false
}
