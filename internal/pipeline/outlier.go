package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// outlierReason 固定的拒收原因，写入离群说明文件
const outlierReason = "Does not match any of the 3 supported templates (CEA, EQ, starteam)"

// HandleOutlier 处理未命中模板的文件：原样复制到离群目录，
// 并写一份人类可读的说明；绝不尝试提取或伪造部分产物
func HandleOutlier(filePath, outlierDir string, processedAt time.Time) error {
	if err := os.MkdirAll(outlierDir, 0755); err != nil {
		return err
	}

	fileName := filepath.Base(filePath)
	if err := copyFile(filePath, filepath.Join(outlierDir, fileName)); err != nil {
		return fmt.Errorf("copy outlier file: %w", err)
	}

	note := fmt.Sprintf("Outlier File: %s\nOriginal Path: %s\nProcessed Date: %s\nReason: %s\n",
		fileName, filePath, processedAt.Format(time.RFC3339), outlierReason)

	infoPath := filepath.Join(outlierDir, baseName(fileName)+"_info.txt")
	return os.WriteFile(infoPath, []byte(note), 0644)
}
