package model

type Generation struct {
	GenerationID string `gorm:"column:generation_id;type:text;primaryKey"`
	Kind         string `gorm:"column:kind;type:text;not null;index"`
	SourceRef    string `gorm:"column:source_ref;type:text;not null"`
	StyleID      string `gorm:"column:style_id;type:text;not null;default:''"`
	MIMEType     string `gorm:"column:mime_type;type:text;not null;default:''"`
	Payload      []byte `gorm:"column:payload;type:blob;not null"`
	Summary      string `gorm:"column:summary;type:text;not null;default:''"`
	CreatedAt    string `gorm:"column:created_at;type:text;not null"`
}

func (Generation) TableName() string {
	return "generations"
}
