// Package importer 将提取产物（index.json + images/ + index.xlsx）
// 导入关系库与对象存储
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BecaLiang/stg-final/internal/blob"
	"github.com/BecaLiang/stg-final/internal/model"
	"github.com/BecaLiang/stg-final/internal/store"
)

// Importer JSON→DB 导入器
// 按 fileName 幂等：已入库的文档直接跳过
type Importer struct {
	store    *store.Store
	uploader blob.Uploader
}

// New 创建导入器
func New(s *store.Store, uploader blob.Uploader) *Importer {
	return &Importer{store: s, uploader: uploader}
}

// Report 导入统计
type Report struct {
	Total    int
	Imported int
	Skipped  int
	Failed   int
}

// ImportDir 遍历提取输出目录下的所有文档子目录并逐一导入
// 单个文档的失败只计数，不中断整批
func (im *Importer) ImportDir(ctx context.Context, dataDir string) (Report, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return Report{}, fmt.Errorf("read data dir: %w", err)
	}

	report := Report{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		docDir := filepath.Join(dataDir, e.Name())
		if _, err := os.Stat(filepath.Join(docDir, "index.json")); err != nil {
			continue
		}
		report.Total++

		switch imported, err := im.importOne(ctx, docDir); {
		case err != nil:
			log.Printf("导入 %s 失败: %v", docDir, err)
			report.Failed++
		case imported:
			log.Printf("已导入 %s", docDir)
			report.Imported++
		default:
			log.Printf("跳过已存在的 %s", docDir)
			report.Skipped++
		}
	}

	return report, nil
}

// importOne 导入单个文档目录，返回是否真正写入
// 上传先于关系行写入；图片文件缺失时跳过该图片继续
func (im *Importer) importOne(ctx context.Context, docDir string) (bool, error) {
	data, err := os.ReadFile(filepath.Join(docDir, "index.json"))
	if err != nil {
		return false, fmt.Errorf("read index.json: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("parse index.json: %w", err)
	}

	exists, err := im.store.ExistsByFileName(doc.FileName)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	// 原始表格：缺失只告警，文档本身照常入库
	xlsxPath := filepath.Join(docDir, "index.xlsx")
	if _, err := os.Stat(xlsxPath); err != nil {
		log.Printf("原始表格缺失: %s", xlsxPath)
	} else {
		// 存储键保留扩展名，下载时才能还原文件类型
		key := doc.OriginalFile.Key + ".xlsx"
		url, err := im.uploader.Upload(ctx, xlsxPath, key)
		if err != nil {
			return false, fmt.Errorf("upload original file: %w", err)
		}
		doc.OriginalFile.Key = key
		doc.OriginalFile.UploadURL = url
	}

	imagesDir := filepath.Join(docDir, "images")
	for i := range doc.Questions {
		q := &doc.Questions[i]
		q.DescriptionImages = im.uploadImages(ctx, imagesDir, q.DescriptionImages)
		q.SuggestionImages = im.uploadImages(ctx, imagesDir, q.SuggestionImages)
		q.CustomerResponseImages = im.uploadImages(ctx, imagesDir, q.CustomerResponseImages)
	}

	if err := im.store.InsertDocument(&doc); err != nil {
		return false, err
	}
	return true, nil
}

// uploadImages 上传一组图片引用，缺失或上传失败的图片剔除后继续
func (im *Importer) uploadImages(ctx context.Context, imagesDir string, images []model.FileRef) []model.FileRef {
	kept := images[:0]
	for _, img := range images {
		localPath := filepath.Join(imagesDir, img.Name)
		if _, err := os.Stat(localPath); err != nil {
			log.Printf("图片缺失，跳过: %s", localPath)
			continue
		}

		key := img.Key + filepath.Ext(img.Name)
		url, err := im.uploader.Upload(ctx, localPath, key)
		if err != nil {
			log.Printf("上传图片 %s 失败，跳过: %v", img.Name, err)
			continue
		}
		img.Key = key
		img.UploadURL = url
		kept = append(kept, img)
	}
	return kept
}
