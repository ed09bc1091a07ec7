package parser

import (
	"fmt"

	"github.com/BecaLiang/stg-final/internal/model"
)

// Validate 校验必填字段，返回是否通过及违反规则的描述列表
// 只检查 customerName、fileName 与各问题的 no，不会因可选字段
// 缺失而拒绝；不修改 Document
func Validate(doc *model.Document) (bool, []string) {
	var errs []string

	if doc.CustomerName == "" {
		errs = append(errs, "Missing required field: customerName")
	}
	if doc.FileName == "" {
		errs = append(errs, "Missing required field: fileName")
	}

	for i, q := range doc.Questions {
		if q.No == "" {
			errs = append(errs, fmt.Sprintf("Question %d missing required field: no", i+1))
		}
	}

	return len(errs) == 0, errs
}
