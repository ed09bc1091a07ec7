package parser

import (
	"time"

	"github.com/google/uuid"

	"github.com/BecaLiang/stg-final/internal/model"
)

// MapDocument 合并元数据与问题序列为规范化 Document
//
// createdAt 取表头日期，缺失时用 now；status 固定为 Closed（本管线
// 只产出已关闭的记录）。此处不做校验。
func MapDocument(meta model.Metadata, questions []model.Question, fileName string, now time.Time) model.Document {
	createdAt := now
	if meta.CreatedAt != nil {
		createdAt = *meta.CreatedAt
	}

	doc := model.Document{
		ID:                    uuid.NewString(),
		CreatedAt:             createdAt,
		CustomerName:          meta.CustomerName,
		EngineerName:          meta.EngineerName,
		CustomerPN:            meta.CustomerPN,
		FactoryPN:             meta.FactoryPN,
		StgPN:                 meta.StgPN,
		BaseMaterial:          meta.BaseMaterial,
		SolderMask:            meta.SolderMask,
		ViaPluggingType:       meta.ViaPluggingType,
		PanelSize:             meta.PanelSize,
		Status:                model.StatusClosed,
		StgSignatureDate:      meta.StgSignatureDate,
		StgSignatures:         meta.StgSignatures,
		CustomerSignatureDate: meta.CustomerSignatureDate,
		CustomerSignatures:    meta.CustomerSignatures,
		FileName:              fileName,
		OriginalFile: model.FileRef{
			ID:        uuid.NewString(),
			CreatedAt: now,
			Name:      fileName,
			Type:      model.XLSXContentType,
			Key:       uuid.NewString(),
			UploadURL: fileName,
		},
		Questions: make([]model.Question, 0, len(questions)),
	}

	for _, q := range questions {
		q.ID = uuid.NewString()
		q.CreatedAt = createdAt
		doc.Questions = append(doc.Questions, q)
	}

	return doc
}
