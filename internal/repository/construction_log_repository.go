package repository

import (
	"time"

	"github.com/obrafacil/obrafacil-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConstructionLogRepository is a GORM implementation of ConstructionLogRepository
type GormConstructionLogRepository struct {
	db *gorm.DB
}

// NewConstructionLogRepository creates a new ConstructionLogRepository
func NewConstructionLogRepository(db *gorm.DB) ConstructionLogRepository {
	return &GormConstructionLogRepository{db: db}
}

// aggregatePreloads lists every child collection plus the denormalized
// employee/equipment relations the responses expose.
var aggregatePreloads = []string{
	"Weathers",
	"Occurrences",
	"Occurrences.Employee",
	"Services",
	"Attachments",
	"EmployeeHours",
	"EmployeeHours.Employee",
	"EquipmentUsage",
	"EquipmentUsage.Equipment",
}

// CreateAggregate inserts the log and all child rows in one transaction.
// A failed child insert rolls back the parent row as well.
func (r *GormConstructionLogRepository) CreateAggregate(log *models.ConstructionLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		weathers := log.Weathers
		occurrences := log.Occurrences
		services := log.Services
		attachments := log.Attachments
		employeeHours := log.EmployeeHours
		equipmentUsage := log.EquipmentUsage

		if err := tx.Omit(clause.Associations).Create(log).Error; err != nil {
			return err
		}

		if err := insertWeathers(tx, log.ID, weathers); err != nil {
			return err
		}
		if err := insertOccurrences(tx, log.ID, occurrences); err != nil {
			return err
		}
		if err := insertServices(tx, log.ID, services); err != nil {
			return err
		}
		if err := insertAttachments(tx, log.ID, attachments); err != nil {
			return err
		}
		if err := insertEmployeeHours(tx, log.ID, employeeHours); err != nil {
			return err
		}
		if err := insertEquipmentUsage(tx, log.ID, equipmentUsage); err != nil {
			return err
		}

		log.Weathers = weathers
		log.Occurrences = occurrences
		log.Services = services
		log.Attachments = attachments
		log.EmployeeHours = employeeHours
		log.EquipmentUsage = equipmentUsage
		return nil
	})
}

// FindByID finds a log with all child collections, optionally requiring an
// exact date match.
func (r *GormConstructionLogRepository) FindByID(id uint64, date *time.Time) (*models.ConstructionLog, error) {
	query := r.db
	for _, p := range aggregatePreloads {
		query = query.Preload(p)
	}

	if date != nil {
		query = query.Where("date = ?", *date)
	}

	var log models.ConstructionLog
	if err := query.First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// List retrieves a project's logs ordered by date ascending
func (r *GormConstructionLogRepository) List(filter LogFilter) ([]models.ConstructionLog, error) {
	query := r.db.Where("project_id = ?", filter.ProjectID)
	for _, p := range aggregatePreloads {
		query = query.Preload(p)
	}

	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}

	var logs []models.ConstructionLog
	if err := query.Order("date ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// UpdateAggregate saves parent-row changes and replaces the child
// collections present in the replacement. Each present child type has its
// prior rows deleted and the new set inserted; absent types are untouched.
// Everything runs in one transaction so readers never observe a half-replaced
// aggregate.
func (r *GormConstructionLogRepository) UpdateAggregate(log *models.ConstructionLog, replace ChildReplacement) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(log).Error; err != nil {
			return err
		}

		if replace.Weathers != nil {
			if err := tx.Where("log_id = ?", log.ID).Delete(&models.WeatherEntry{}).Error; err != nil {
				return err
			}
			if err := insertWeathers(tx, log.ID, *replace.Weathers); err != nil {
				return err
			}
			log.Weathers = *replace.Weathers
		}

		if replace.Occurrences != nil {
			if err := tx.Where("log_id = ?", log.ID).Delete(&models.Occurrence{}).Error; err != nil {
				return err
			}
			if err := insertOccurrences(tx, log.ID, *replace.Occurrences); err != nil {
				return err
			}
			log.Occurrences = *replace.Occurrences
		}

		if replace.Services != nil {
			if err := tx.Where("log_id = ?", log.ID).Delete(&models.ServiceEntry{}).Error; err != nil {
				return err
			}
			if err := insertServices(tx, log.ID, *replace.Services); err != nil {
				return err
			}
			log.Services = *replace.Services
		}

		if replace.Attachments != nil {
			if err := tx.Where("log_id = ?", log.ID).Delete(&models.Attachment{}).Error; err != nil {
				return err
			}
			if err := insertAttachments(tx, log.ID, *replace.Attachments); err != nil {
				return err
			}
			log.Attachments = *replace.Attachments
		}

		if replace.EmployeeHours != nil {
			if err := tx.Where("log_id = ?", log.ID).Delete(&models.EmployeeHour{}).Error; err != nil {
				return err
			}
			if err := insertEmployeeHours(tx, log.ID, *replace.EmployeeHours); err != nil {
				return err
			}
			log.EmployeeHours = *replace.EmployeeHours
		}

		if replace.EquipmentUsage != nil {
			if err := tx.Where("log_id = ?", log.ID).Delete(&models.EquipmentUsage{}).Error; err != nil {
				return err
			}
			if err := insertEquipmentUsage(tx, log.ID, *replace.EquipmentUsage); err != nil {
				return err
			}
			log.EquipmentUsage = *replace.EquipmentUsage
		}

		return nil
	})
}

func insertWeathers(tx *gorm.DB, logID uint64, rows []models.WeatherEntry) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].LogID = logID
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func insertOccurrences(tx *gorm.DB, logID uint64, rows []models.Occurrence) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].LogID = logID
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func insertServices(tx *gorm.DB, logID uint64, rows []models.ServiceEntry) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].LogID = logID
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func insertAttachments(tx *gorm.DB, logID uint64, rows []models.Attachment) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].LogID = logID
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func insertEmployeeHours(tx *gorm.DB, logID uint64, rows []models.EmployeeHour) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].LogID = logID
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func insertEquipmentUsage(tx *gorm.DB, logID uint64, rows []models.EquipmentUsage) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].ID = 0
		rows[i].LogID = logID
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}
