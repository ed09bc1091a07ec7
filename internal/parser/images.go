package parser

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExtractImages 提取工作簿内所有嵌入图片并保存为 PNG
// 返回锚点单元格 → 图片文件名列表。图片只绑定其锚点左上角所在的
// 单元格，下游不得做邻近猜测。
//
// 文件名 image_<n>.png 的计数器为单文档内私有，解码失败也会前进，
// 保证重试后文件名引用不漂移。
func ExtractImages(f *excelize.File, imagesDir string) (ImageMap, error) {
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}

	images := ImageMap{}
	counter := 1

	for _, sheet := range f.GetSheetList() {
		cells, err := f.GetPictureCells(sheet)
		if err != nil {
			log.Printf("读取 Sheet %s 图片锚点失败: %v", sheet, err)
			continue
		}

		for _, cell := range cells {
			col, row, err := excelize.CellNameToCoordinates(cell)
			if err != nil {
				log.Printf("解析图片锚点 %s!%s 失败: %v", sheet, cell, err)
				continue
			}
			ref := CellRef{Col: col, Row: row}

			pics, err := f.GetPictures(sheet, cell)
			if err != nil {
				log.Printf("读取 %s!%s 图片失败: %v", sheet, cell, err)
				continue
			}

			for _, pic := range pics {
				name := fmt.Sprintf("image_%d.png", counter)
				counter++

				if err := savePNG(pic.File, filepath.Join(imagesDir, name)); err != nil {
					log.Printf("保存图片 %s 失败: %v", name, err)
					continue
				}
				images[ref] = append(images[ref], name)
			}
		}
	}

	return images, nil
}

// savePNG 解码任意栅格格式并重编码为 PNG 落盘
func savePNG(data []byte, path string) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
