package entity

import "time"

// Project is a posted work listing owned by exactly one author.
type Project struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Technologies []string     `json:"technologies"`
	Price        float64      `json:"price"`
	Author       Author       `json:"author"`
	Attachments  []Attachment `json:"attachments"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Author is the public view of the user who posted a project.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Attachment points at a file previously pushed to object storage.
type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
