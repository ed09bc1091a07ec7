package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Summary 批处理统计
type Summary struct {
	Total     int
	Processed int
	Outliers  int
	Failed    int
}

// SuccessRate 成功率（识别成功 + 离群分流均计为成功处置）
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Processed+s.Outliers) / float64(s.Total)
}

// ListInputFiles 枚举输入目录下的表格文件
func ListInputFiles(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls") {
			files = append(files, filepath.Join(inputDir, name))
		}
	}
	return files, nil
}

// Run 对文件列表逐个执行提取管线
//
// workers 为 1 时严格顺序执行；大于 1 时文件间并发，
// 文件间无共享状态，顺序不保证。单个文件的失败只计数，不中断批次。
func (p *Pipeline) Run(ctx context.Context, files []string, workers int) Summary {
	if workers < 1 {
		workers = 1
	}

	summary := Summary{Total: len(files)}
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, filePath := range files {
		g.Go(func() error {
			status, err := p.ProcessFile(filePath)
			if err != nil {
				log.Printf("处理 %s 出错: %v", filePath, err)
			}

			mu.Lock()
			switch status {
			case StatusProcessed:
				summary.Processed++
			case StatusOutlier:
				summary.Outliers++
			default:
				summary.Failed++
			}
			mu.Unlock()
			return nil
		})
	}

	// worker 不返回错误，Wait 只用于同步
	_ = g.Wait()

	return summary
}
