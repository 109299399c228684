package uploads

// CutoffFile is an uploaded cutoff PDF for an exam year.
type CutoffFile struct {
	ID         int64  `json:"id"`
	FileName   string `json:"file_name"` // original name
	BlobKey    string `json:"blob_key"`
	Year       int    `json:"year"`
	UploadedAt int64  `json:"uploaded_at"`
}

// DocumentTemplate is a reference document students download (marks card
// formats, affidavits, and so on).
type DocumentTemplate struct {
	ID           int64  `json:"id"`
	DocumentName string `json:"document_name"`
	FileName     string `json:"file_name"`
	BlobKey      string `json:"blob_key"`
	UploadedAt   int64  `json:"uploaded_at"`
}
