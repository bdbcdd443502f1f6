package testutil

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"vidtube-go/internal/media"
)

// ErrStoreUnavailable FakeStore 注入的失败
var ErrStoreUnavailable = errors.New("media store unavailable")

const fakeBaseURL = "https://media.test"

// FakeStore 内存实现的 media.Store，记录上传与删除
type FakeStore struct {
	mu sync.Mutex

	// FailUpload 对应类别的上传失败
	FailUpload map[media.Kind]bool
	// FailPaths 指定本地文件的上传失败
	FailPaths  map[string]bool
	FailDelete bool
	// VideoDuration 视频上传返回的时长
	VideoDuration float64

	seq     int
	objects map[string]bool
	Deleted []string
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		FailUpload:    map[media.Kind]bool{},
		FailPaths:     map[string]bool{},
		VideoDuration: 42.5,
		objects:       map[string]bool{},
	}
}

func (s *FakeStore) Upload(_ context.Context, localPath string, kind media.Kind) (*media.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailUpload[kind] || s.FailPaths[localPath] {
		return nil, ErrStoreUnavailable
	}
	s.seq++
	key := fmt.Sprintf("%ss/%d%s", kind, s.seq, strings.ToLower(filepath.Ext(localPath)))
	url := media.PublicURL(fakeBaseURL, key)
	s.objects[url] = true

	asset := &media.Asset{URL: url, Key: key}
	if kind == media.KindVideo {
		asset.Duration = s.VideoDuration
	}
	return asset, nil
}

func (s *FakeStore) Delete(_ context.Context, url string) error {
	if url == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailDelete {
		return ErrStoreUnavailable
	}
	delete(s.objects, url)
	s.Deleted = append(s.Deleted, url)
	return nil
}

// Has 对象是否仍在存储中
func (s *FakeStore) Has(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[url]
}

// Count 当前对象数量
func (s *FakeStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
