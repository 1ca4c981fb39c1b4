package repository

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nanpeixoto/acervus/internal/domain"
	"github.com/nanpeixoto/acervus/internal/infrastructure/database/models"
)

// referenceExists checks one foreign key against its target table.
func referenceExists(tx *gorm.DB, model any, id uint) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func requireReference(tx *gorm.DB, model any, id uint, name string) error {
	ok, err := referenceExists(tx, model, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ValidationError{Reference: name, Reason: "referenced record does not exist"}
	}
	return nil
}

// checkBaseReferences validates every foreign key of a new base
// contract, reporting the first failing reference by name.
func checkBaseReferences(tx *gorm.DB, c domain.Contract) error {
	if err := requireReference(tx, &models.Company{}, c.CompanyID, "companyId"); err != nil {
		return err
	}
	if err := requireReference(tx, &models.Institution{}, c.InstitutionID, "institutionId"); err != nil {
		return err
	}
	if err := requireReference(tx, &models.Candidate{}, c.CandidateID, "candidateId"); err != nil {
		return err
	}
	if err := requireReference(tx, &models.PaymentPlan{}, c.PaymentPlanID, "paymentPlanId"); err != nil {
		return err
	}
	if err := requireReference(tx, &models.DocumentModel{}, c.DocumentModelID, "documentModelId"); err != nil {
		return err
	}
	if c.SupervisorID != nil {
		if err := requireReference(tx, &models.Supervisor{}, *c.SupervisorID, "supervisorId"); err != nil {
			return err
		}
	}
	if c.SectorID != nil {
		if err := requireReference(tx, &models.Sector{}, *c.SectorID, "sectorId"); err != nil {
			return err
		}
	}
	if c.Kind == domain.KindApprenticeship {
		if c.CourseID == nil || c.CohortID == nil {
			return domain.ValidationError{Reference: "courseId", Reason: "required for apprenticeship"}
		}
		return checkCohortCourse(tx, *c.CourseID, *c.CohortID)
	}
	return nil
}

// checkPatchReferences validates only the foreign keys the patch
// supplies.
func checkPatchReferences(tx *gorm.DB, p domain.ContractPatch) error {
	if p.CompanyID != nil {
		if err := requireReference(tx, &models.Company{}, *p.CompanyID, "companyId"); err != nil {
			return err
		}
	}
	if p.InstitutionID != nil {
		if err := requireReference(tx, &models.Institution{}, *p.InstitutionID, "institutionId"); err != nil {
			return err
		}
	}
	if p.CandidateID != nil {
		if err := requireReference(tx, &models.Candidate{}, *p.CandidateID, "candidateId"); err != nil {
			return err
		}
	}
	if p.SupervisorID != nil {
		if err := requireReference(tx, &models.Supervisor{}, *p.SupervisorID, "supervisorId"); err != nil {
			return err
		}
	}
	if p.SectorID != nil {
		if err := requireReference(tx, &models.Sector{}, *p.SectorID, "sectorId"); err != nil {
			return err
		}
	}
	if p.PaymentPlanID != nil {
		if err := requireReference(tx, &models.PaymentPlan{}, *p.PaymentPlanID, "paymentPlanId"); err != nil {
			return err
		}
	}
	if p.DocumentModelID != nil {
		if err := requireReference(tx, &models.DocumentModel{}, *p.DocumentModelID, "documentModelId"); err != nil {
			return err
		}
	}
	if p.CourseID != nil {
		if err := requireReference(tx, &models.Course{}, *p.CourseID, "courseId"); err != nil {
			return err
		}
	}
	if p.CohortID != nil {
		if err := requireReference(tx, &models.Cohort{}, *p.CohortID, "cohortId"); err != nil {
			return err
		}
		if p.CourseID != nil {
			return checkCohortCourse(tx, *p.CourseID, *p.CohortID)
		}
	}
	return nil
}

// checkCohortCourse enforces that the cohort belongs to the course.
func checkCohortCourse(tx *gorm.DB, courseID, cohortID uint) error {
	var cohort models.Cohort
	err := tx.Take(&cohort, "id = ?", cohortID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ValidationError{Reference: "cohortId", Reason: "referenced record does not exist"}
	}
	if err != nil {
		return err
	}
	if cohort.CourseID != courseID {
		return domain.ValidationError{Reference: "cohortId", Reason: "cohort does not belong to the course"}
	}
	return nil
}

// translateError maps storage-level failures to the domain taxonomy.
func translateError(err error, resource string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Resource: resource}
	}
	return err
}

func pqStringArray(flags []string) pq.StringArray {
	return pq.StringArray(flags)
}
