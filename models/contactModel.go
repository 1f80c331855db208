package models

type ContactMessage struct {
	Base
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"not null"`
	Phone   string `json:"phone"`
	Message string `json:"message" gorm:"type:text;not null"`
}

type NewsletterSubscriber struct {
	Base
	Email string `json:"email" gorm:"uniqueIndex;size:191;not null"`
}
