package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/BecaLiang/stg-final/internal/model"
	"github.com/BecaLiang/stg-final/internal/parser"
)

// Status 单文件处理结果
type Status int

const (
	StatusProcessed Status = iota // 识别成功并产出 index.json
	StatusOutlier                 // 未命中任何模板，转入离群目录
	StatusFailed                  // 校验失败或处理中出错
)

// Pipeline 单文件提取管线：识别 → 提取 → 映射 → 校验 → 落盘
// 图片计数器与输出子目录均为单文档私有，可安全并发处理多个文件
type Pipeline struct {
	OutputDir  string
	OutlierDir string
	Now        func() time.Time
}

// New 创建管线
func New(outputDir, outlierDir string) *Pipeline {
	return &Pipeline{
		OutputDir:  outputDir,
		OutlierDir: outlierDir,
		Now:        time.Now,
	}
}

// ProcessFile 处理单个表格文件
// 任何意外错误都收敛在本文件边界内，不向批处理循环传播异常
func (p *Pipeline) ProcessFile(filePath string) (status Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			status = StatusFailed
			err = fmt.Errorf("panic while processing %s: %v", filePath, r)
		}
	}()

	fileName := filepath.Base(filePath)

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return StatusFailed, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return StatusFailed, fmt.Errorf("workbook has no sheets")
	}

	grid, err := parser.NewGrid(f, sheets[0])
	if err != nil {
		return StatusFailed, err
	}

	cls := parser.Classify(sheets[0], grid)
	if cls.Kind == model.TemplateNone {
		log.Printf("文件 %s 未命中任何模板，转入离群目录", fileName)
		if err := HandleOutlier(filePath, p.OutlierDir, p.Now()); err != nil {
			return StatusFailed, fmt.Errorf("handle outlier: %w", err)
		}
		return StatusOutlier, nil
	}

	if cls.Fallback {
		// 仅结构兜底命中，标记出来供人工复核，仍继续处理
		log.Printf("文件 %s 仅由结构兜底识别为 %s 模板，建议人工复核", fileName, cls.Kind)
	}
	log.Printf("按 %s 模板处理文件 %s", cls.Kind, fileName)

	docDir := filepath.Join(p.OutputDir, baseName(fileName))
	imagesDir := filepath.Join(docDir, "images")

	meta := parser.ExtractMetadata(grid, cls.Kind)

	images, err := parser.ExtractImages(f, imagesDir)
	if err != nil {
		return StatusFailed, fmt.Errorf("extract images: %w", err)
	}

	questions := parser.ParseQuestions(grid, cls.Kind, images, p.Now())
	doc := parser.MapDocument(meta, questions, fileName, p.Now())

	if ok, errs := parser.Validate(&doc); !ok {
		// 校验失败不落盘，整个文件按失败计
		return StatusFailed, fmt.Errorf("validation failed: %s", strings.Join(errs, "; "))
	}

	if err := writeDocument(&doc, docDir); err != nil {
		return StatusFailed, fmt.Errorf("write index.json: %w", err)
	}

	// 原始表格随产物一起归档，失败只告警不影响结果
	if err := copyFile(filePath, filepath.Join(docDir, "index.xlsx")); err != nil {
		log.Printf("复制原始表格失败: %v", err)
	}

	return StatusProcessed, nil
}

// writeDocument 序列化 Document 为带缩进的 UTF-8 JSON
func writeDocument(doc *model.Document, docDir string) error {
	if err := os.MkdirAll(docDir, 0755); err != nil {
		return err
	}

	out, err := os.Create(filepath.Join(docDir, "index.json"))
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// baseName 去扩展名的文件基名（自首个点截断，决定输出子目录名）
func baseName(fileName string) string {
	if i := strings.Index(fileName, "."); i >= 0 {
		return fileName[:i]
	}
	return fileName
}

// copyFile 字节级复制
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
