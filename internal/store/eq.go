package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/BecaLiang/stg-final/internal/model"
)

// 图片列表在关系表中的角色值
const (
	RoleDescription = "description"
	RoleSuggestion  = "suggestion"
	RoleResponse    = "response"
)

// DocumentSummary 文档列表项
type DocumentSummary struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	CustomerName  string    `json:"customerName"`
	FileName      string    `json:"fileName"`
	Status        string    `json:"status"`
	QuestionCount int       `json:"questionCount"`
}

// ExistsByFileName 按 fileName 判断文档是否已入库（导入幂等的依据）
func (s *Store) ExistsByFileName(fileName string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM eq WHERE file_name = ?`, fileName).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query eq by file_name: %w", err)
	}
	return n > 0, nil
}

// InsertDocument 在单个事务内写入文档、问题及全部文件引用
func (s *Store) InsertDocument(doc *model.Document) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertFile(tx, &doc.OriginalFile); err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO eq (
			id, created_at, customer_name, engineer_name,
			customer_pn, factory_pn, stg_pn,
			base_material, solder_mask, via_plugging_type, panel_size,
			status, stg_signature_date, stg_signatures,
			customer_signature_date, customer_signatures,
			file_name, original_file_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		doc.ID, doc.CreatedAt, doc.CustomerName, doc.EngineerName,
		strings.Join(doc.CustomerPN, "\n"), strings.Join(doc.FactoryPN, "\n"), strings.Join(doc.StgPN, "\n"),
		doc.BaseMaterial, doc.SolderMask, doc.ViaPluggingType, doc.PanelSize,
		doc.Status, doc.StgSignatureDate, strings.Join(doc.StgSignatures, "\n"),
		doc.CustomerSignatureDate, strings.Join(doc.CustomerSignatures, "\n"),
		doc.FileName, doc.OriginalFile.ID,
	)
	if err != nil {
		return fmt.Errorf("insert eq: %w", err)
	}

	qStmt, err := tx.Prepare(`
		INSERT INTO question (id, eq_id, created_at, no, description, suggestion, customer_response, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer qStmt.Close()

	for seq, q := range doc.Questions {
		if _, err := qStmt.Exec(q.ID, doc.ID, q.CreatedAt, q.No,
			q.Description, q.Suggestion, q.CustomerResponse, seq); err != nil {
			return fmt.Errorf("insert question %s: %w", q.No, err)
		}

		if err := insertQuestionImages(tx, q.ID, RoleDescription, q.DescriptionImages); err != nil {
			return err
		}
		if err := insertQuestionImages(tx, q.ID, RoleSuggestion, q.SuggestionImages); err != nil {
			return err
		}
		if err := insertQuestionImages(tx, q.ID, RoleResponse, q.CustomerResponseImages); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertFile(tx *sql.Tx, f *model.FileRef) error {
	_, err := tx.Exec(`
		INSERT INTO file (id, created_at, name, type, key, upload_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`, f.ID, f.CreatedAt, f.Name, f.Type, f.Key, f.UploadURL)
	if err != nil {
		return fmt.Errorf("insert file %s: %w", f.Name, err)
	}
	return nil
}

func insertQuestionImages(tx *sql.Tx, questionID, role string, images []model.FileRef) error {
	for seq, img := range images {
		if err := insertFile(tx, &img); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO question_image (question_id, file_id, role, seq)
			VALUES (?, ?, ?, ?)
		`, questionID, img.ID, role, seq)
		if err != nil {
			return fmt.Errorf("insert question_image: %w", err)
		}
	}
	return nil
}

// ListDocuments 文档列表（按入库时间倒序）
func (s *Store) ListDocuments() ([]DocumentSummary, error) {
	rows, err := s.db.Query(`
		SELECT e.id, e.created_at, e.customer_name, e.file_name, e.status,
		       (SELECT COUNT(1) FROM question q WHERE q.eq_id = e.id)
		FROM eq e
		ORDER BY e.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentSummary
	for rows.Next() {
		var d DocumentSummary
		if err := rows.Scan(&d.ID, &d.CreatedAt, &d.CustomerName, &d.FileName, &d.Status, &d.QuestionCount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDocument 取完整文档（含问题与图片引用），不存在时返回 sql.ErrNoRows
func (s *Store) GetDocument(id string) (*model.Document, error) {
	doc := &model.Document{}
	var (
		engineerName, baseMaterial, solderMask, viaPlugging, panelSize sql.NullString
		customerPN, factoryPN, stgPN, stgSigs, custSigs                string
		stgSigDate, custSigDate                                        sql.NullTime
		originalFileID                                                 sql.NullString
	)

	err := s.db.QueryRow(`
		SELECT id, created_at, customer_name, engineer_name,
		       customer_pn, factory_pn, stg_pn,
		       base_material, solder_mask, via_plugging_type, panel_size,
		       status, stg_signature_date, stg_signatures,
		       customer_signature_date, customer_signatures,
		       file_name, original_file_id
		FROM eq WHERE id = ?
	`, id).Scan(
		&doc.ID, &doc.CreatedAt, &doc.CustomerName, &engineerName,
		&customerPN, &factoryPN, &stgPN,
		&baseMaterial, &solderMask, &viaPlugging, &panelSize,
		&doc.Status, &stgSigDate, &stgSigs,
		&custSigDate, &custSigs,
		&doc.FileName, &originalFileID,
	)
	if err != nil {
		return nil, err
	}

	doc.EngineerName = nullableString(engineerName)
	doc.BaseMaterial = nullableString(baseMaterial)
	doc.SolderMask = nullableString(solderMask)
	doc.ViaPluggingType = nullableString(viaPlugging)
	doc.PanelSize = nullableString(panelSize)
	doc.CustomerPN = splitStored(customerPN)
	doc.FactoryPN = splitStored(factoryPN)
	doc.StgPN = splitStored(stgPN)
	doc.StgSignatures = splitStored(stgSigs)
	doc.CustomerSignatures = splitStored(custSigs)
	doc.StgSignatureDate = nullableTime(stgSigDate)
	doc.CustomerSignatureDate = nullableTime(custSigDate)

	if originalFileID.Valid {
		f, err := s.getFile(originalFileID.String)
		if err != nil {
			return nil, err
		}
		doc.OriginalFile = *f
	}

	questions, err := s.getQuestions(doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Questions = questions

	return doc, nil
}

func (s *Store) getFile(id string) (*model.FileRef, error) {
	f := &model.FileRef{}
	err := s.db.QueryRow(`
		SELECT id, created_at, name, type, key, upload_url FROM file WHERE id = ?
	`, id).Scan(&f.ID, &f.CreatedAt, &f.Name, &f.Type, &f.Key, &f.UploadURL)
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", id, err)
	}
	return f, nil
}

// GetFileByKey 按存储键取文件引用（供下载接口使用）
func (s *Store) GetFileByKey(key string) (*model.FileRef, error) {
	f := &model.FileRef{}
	err := s.db.QueryRow(`
		SELECT id, created_at, name, type, key, upload_url FROM file WHERE key = ?
	`, key).Scan(&f.ID, &f.CreatedAt, &f.Name, &f.Type, &f.Key, &f.UploadURL)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Store) getQuestions(eqID string) ([]model.Question, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, no, description, suggestion, customer_response
		FROM question WHERE eq_id = ? ORDER BY seq
	`, eqID)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		var desc, sugg, resp sql.NullString
		if err := rows.Scan(&q.ID, &q.CreatedAt, &q.No, &desc, &sugg, &resp); err != nil {
			return nil, err
		}
		q.Description = nullableString(desc)
		q.Suggestion = nullableString(sugg)
		q.CustomerResponse = nullableString(resp)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		if err := s.fillQuestionImages(&questions[i]); err != nil {
			return nil, err
		}
	}
	return questions, nil
}

func (s *Store) fillQuestionImages(q *model.Question) error {
	rows, err := s.db.Query(`
		SELECT f.id, f.created_at, f.name, f.type, f.key, f.upload_url, qi.role
		FROM question_image qi JOIN file f ON f.id = qi.file_id
		WHERE qi.question_id = ? ORDER BY qi.role, qi.seq
	`, q.ID)
	if err != nil {
		return fmt.Errorf("get question images: %w", err)
	}
	defer rows.Close()

	q.DescriptionImages = []model.FileRef{}
	q.SuggestionImages = []model.FileRef{}
	q.CustomerResponseImages = []model.FileRef{}

	for rows.Next() {
		var f model.FileRef
		var role string
		if err := rows.Scan(&f.ID, &f.CreatedAt, &f.Name, &f.Type, &f.Key, &f.UploadURL, &role); err != nil {
			return err
		}
		switch role {
		case RoleDescription:
			q.DescriptionImages = append(q.DescriptionImages, f)
		case RoleSuggestion:
			q.SuggestionImages = append(q.SuggestionImages, f)
		case RoleResponse:
			q.CustomerResponseImages = append(q.CustomerResponseImages, f)
		}
	}
	return rows.Err()
}

func nullableString(v sql.NullString) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

// splitStored 还原换行拼接存储的列表
func splitStored(v string) []string {
	if v == "" {
		return []string{}
	}
	return strings.Split(v, "\n")
}
