package models

import "time"

type Company struct {
	ID                  uint   `json:"id" gorm:"primaryKey"`
	RazaoSocial         string `json:"razaoSocial" gorm:"type:text"`
	NomeFantasia        string `json:"nomeFantasia" gorm:"type:text"`
	CNPJ                string `json:"cnpj" gorm:"type:text;uniqueIndex"`
	InscricaoEstadual   string `json:"inscricaoEstadual" gorm:"type:text"`
	Street              string `json:"street" gorm:"type:text"`
	Number              string `json:"number" gorm:"type:text"`
	Neighborhood        string `json:"neighborhood" gorm:"type:text"`
	City                string `json:"city" gorm:"type:text"`
	State               string `json:"state" gorm:"type:text"`
	Phone               string `json:"phone" gorm:"type:text"`
	Email               string `json:"email" gorm:"type:text"`
	LegalRepresentative string `json:"legalRepresentative" gorm:"type:text"`
}

type Institution struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	RazaoSocial  string `json:"razaoSocial" gorm:"type:text"`
	CNPJ         string `json:"cnpj" gorm:"type:text;uniqueIndex"`
	Street       string `json:"street" gorm:"type:text"`
	Number       string `json:"number" gorm:"type:text"`
	Neighborhood string `json:"neighborhood" gorm:"type:text"`
	City         string `json:"city" gorm:"type:text"`
	State        string `json:"state" gorm:"type:text"`
	Phone        string `json:"phone" gorm:"type:text"`
	Email        string `json:"email" gorm:"type:text"`
	Director     string `json:"director" gorm:"type:text"`
}

type Candidate struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	FullName     string     `json:"fullName" gorm:"type:text;not null"`
	CPF          string     `json:"cpf" gorm:"type:text;uniqueIndex"`
	RG           string     `json:"rg" gorm:"type:text"`
	BirthDate    *time.Time `json:"birthDate" gorm:"type:date"`
	Street       string     `json:"street" gorm:"type:text"`
	Number       string     `json:"number" gorm:"type:text"`
	Neighborhood string     `json:"neighborhood" gorm:"type:text"`
	City         string     `json:"city" gorm:"type:text"`
	State        string     `json:"state" gorm:"type:text"`
	Phone        string     `json:"phone" gorm:"type:text"`
	Email        string     `json:"email" gorm:"type:text"`
}

type Supervisor struct {
	ID                       uint   `json:"id" gorm:"primaryKey"`
	Name                     string `json:"name" gorm:"type:text;not null"`
	Role                     string `json:"role" gorm:"type:text"`
	ProfessionalRegistration string `json:"professionalRegistration" gorm:"type:text"`
	CompanyID                *uint  `json:"companyId" gorm:"index"`
}

type Sector struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:text;not null"`
	Description string `json:"description" gorm:"type:text"`
	CompanyID   *uint  `json:"companyId" gorm:"index"`
}

type Course struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:text;not null"`
}

type Cohort struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"type:text;not null"`
	CourseID uint   `json:"courseId" gorm:"not null;index"`
	Course   Course `json:"-"`
}

type PaymentPlan struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Description string  `json:"description" gorm:"type:text;not null;uniqueIndex"`
	Amount      float64 `json:"amount"`
}

type DocumentModel struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Description string `json:"description" gorm:"type:text;not null;uniqueIndex"`
}
