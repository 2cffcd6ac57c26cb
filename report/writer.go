package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile 原子写入文件，目录不存在时自动创建
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	// 写入临时文件
	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", tempFile, err)
	}

	// 原子替换
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
