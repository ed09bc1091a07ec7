package parser

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BecaLiang/stg-final/internal/model"
)

// ParseQuestions 扫描变长问题表，每个编号行产出一条 Question
//
// 起始行由模板决定，其后一行是表头跳过。序号列为纯数字的行才是
// 问题行；非问题行跳过但不终止扫描，表格中可能夹空白分隔行。
// 三组图片列表按各自列的精确坐标独立查表，互不串列。
func ParseQuestions(grid *Grid, kind model.TemplateKind, images ImageMap, now time.Time) []model.Question {
	layout := LayoutFor(kind)
	questions := []model.Question{}

	for row := layout.QuestionStartRow + 1; row <= grid.MaxRow(); row++ {
		no := strings.TrimSpace(grid.Cell(row, layout.NoCol))
		if !IsDigits(no) {
			continue
		}

		q := model.Question{
			No:                     no,
			Description:            optional(grid.Cell(row, layout.DescCol)),
			Suggestion:             optional(grid.Cell(row, layout.SuggCol)),
			CustomerResponse:       optional(grid.Cell(row, layout.RespCol)),
			DescriptionImages:      imageRefsAt(images, CellRef{Col: layout.DescCol, Row: row}, now),
			SuggestionImages:       imageRefsAt(images, CellRef{Col: layout.SuggCol, Row: row}, now),
			CustomerResponseImages: imageRefsAt(images, CellRef{Col: layout.RespCol, Row: row}, now),
		}
		questions = append(questions, q)
	}

	return questions
}

// imageRefsAt 取绑定在指定坐标的图片并生成引用，只认精确坐标
func imageRefsAt(images ImageMap, ref CellRef, now time.Time) []model.FileRef {
	refs := []model.FileRef{}
	for _, name := range images[ref] {
		refs = append(refs, model.FileRef{
			ID:        uuid.NewString(),
			CreatedAt: now,
			Name:      name,
			Type:      model.PNGContentType,
			Key:       uuid.NewString(),
			UploadURL: path.Join("images", name),
		})
	}
	return refs
}
