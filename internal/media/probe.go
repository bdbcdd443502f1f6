package media

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FileInfo 暂存文件的探测结果
type FileInfo struct {
	ContentType string
	Size        int64
	Duration    float64
}

// ProbeDuration 读取视频时长，测试中可替换
var ProbeDuration = probeDuration

// Inspect 探测文件类型与大小，视频额外读取时长
func Inspect(localPath string, kind Kind) (*FileInfo, error) {
	stat, err := os.Stat(localPath)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", localPath, err)
	}

	mt, err := mimetype.DetectFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}

	info := &FileInfo{ContentType: mt.String(), Size: stat.Size()}
	if kind == KindVideo {
		dur, err := ProbeDuration(localPath)
		if err != nil {
			return nil, err
		}
		info.Duration = dur
	}
	return info, nil
}

// Matches 内容类型是否符合资源类别
func Matches(contentType string, kind Kind) bool {
	switch kind {
	case KindImage:
		return strings.HasPrefix(contentType, "image/")
	case KindVideo:
		return strings.HasPrefix(contentType, "video/")
	}
	return false
}

func probeDuration(localPath string) (float64, error) {
	out, err := ffmpeg.Probe(localPath)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbeDuration([]byte(out))
}

func parseProbeDuration(raw []byte) (float64, error) {
	var data struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Duration  string `json:"duration"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return 0, fmt.Errorf("decode ffprobe output: %w", err)
	}

	if data.Format.Duration != "" {
		if dur, err := strconv.ParseFloat(data.Format.Duration, 64); err == nil {
			return dur, nil
		}
	}
	for _, s := range data.Streams {
		if s.CodecType != "video" || s.Duration == "" {
			continue
		}
		if dur, err := strconv.ParseFloat(s.Duration, 64); err == nil {
			return dur, nil
		}
	}
	return 0, nil
}
