package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	accessService "opencourse_backend/internals/features/access/service"
	centerModel "opencourse_backend/internals/features/courses/center/model"
	dto "opencourse_backend/internals/features/courses/course/dto"
	model "opencourse_backend/internals/features/courses/course/model"
	joinModel "opencourse_backend/internals/features/courses/join_request/model"
)

// ErrCenterNotAllowed: a professor may only attach a course to a center they
// administer or joined through an accepted join request.
var ErrCenterNotAllowed = errors.New("center not available to this professor")

// ErrLocationNotOwned: a resubmitted location id must belong to the course
// being edited; anything else is rejected before it can touch foreign rows.
var ErrLocationNotOwned = errors.New("location does not belong to this course")

func CenterAllowed(db *gorm.DB, centerID, professorID uuid.UUID) (bool, error) {
	var center centerModel.CenterModel
	if err := db.First(&center, "center_id = ?", centerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if center.CenterAdminID == professorID {
		return true, nil
	}
	return joinModel.HasAcceptedJoinRequest(db, centerID, professorID)
}

// CreateWithGrant inserts the course, its taxonomy links, its location rows
// and the creator's manage_course grant in one transaction. A failed grant
// write rolls the whole course back.
func CreateWithGrant(db *gorm.DB, userID, professorID uuid.UUID, req dto.CourseUpsertRequest) (*model.CourseModel, error) {
	if req.CenterID != nil {
		ok, err := CenterAllowed(db, *req.CenterID, professorID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCenterNotAllowed
		}
	}

	m := req.ToModel(professorID)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if err := writeLinks(tx, m.CourseID, req); err != nil {
			return err
		}
		for i := range req.Locations {
			loc := locationFromRequest(m.CourseID, &req.Locations[i])
			if err := tx.Create(loc).Error; err != nil {
				return err
			}
		}
		return accessService.Grant(tx, userID, accessService.CapManageCourse, m.CourseID)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Update applies the submission to the course and reconciles the dependent
// location collection: rows present in the submission are updated or created,
// rows absent from it are deleted.
func Update(db *gorm.DB, m *model.CourseModel, professorID uuid.UUID, req dto.CourseUpsertRequest) error {
	if req.CenterID != nil {
		ok, err := CenterAllowed(db, *req.CenterID, professorID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCenterNotAllowed
		}
	}

	req.Apply(m)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		if err := clearLinks(tx, m.CourseID); err != nil {
			return err
		}
		if err := writeLinks(tx, m.CourseID, req); err != nil {
			return err
		}
		return reconcileLocations(tx, m.CourseID, req.Locations)
	})
}

// Delete removes the course and everything hanging off it: locations, links,
// enrollments, handouts and the per-object grants.
func Delete(db *gorm.DB, courseID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_location_course_id = ?", courseID).
			Delete(&model.CourseLocationModel{}).Error; err != nil {
			return err
		}
		if err := clearLinks(tx, courseID); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM enrollments WHERE enrollment_course_id = ?", courseID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM handouts WHERE handout_course_id = ?", courseID).Error; err != nil {
			return err
		}
		if err := accessService.RevokeObject(tx, accessService.CapManageCourse, courseID); err != nil {
			return err
		}
		return tx.Delete(&model.CourseModel{}, "course_id = ?", courseID).Error
	})
}

func locationFromRequest(courseID uuid.UUID, r *dto.CourseLocationRequest) *model.CourseLocationModel {
	loc := &model.CourseLocationModel{
		CourseLocationCourseID:       courseID,
		CourseLocationTypeID:         r.TypeID,
		CourseLocationCurrencyID:     r.CurrencyID,
		CourseLocationDescription:    r.Description,
		CourseLocationPrice:          r.Price,
		CourseLocationNumberSessions: r.NumberSessions,
		CourseLocationStartDate:      r.StartDate,
		CourseLocationEndDate:        r.EndDate,
	}
	if r.ID != nil {
		loc.CourseLocationID = *r.ID
	}
	return loc
}

func reconcileLocations(tx *gorm.DB, courseID uuid.UUID, reqs []dto.CourseLocationRequest) error {
	var existing []model.CourseLocationModel
	if err := tx.Where("course_location_course_id = ?", courseID).Find(&existing).Error; err != nil {
		return err
	}
	owned := make(map[uuid.UUID]struct{}, len(existing))
	for i := range existing {
		owned[existing[i].CourseLocationID] = struct{}{}
	}
	keep := make(map[uuid.UUID]struct{}, len(reqs))

	for i := range reqs {
		loc := locationFromRequest(courseID, &reqs[i])
		if reqs[i].ID != nil {
			// a submitted id pointing anywhere but this course's own rows is a
			// validation failure, not an update
			if _, ok := owned[*reqs[i].ID]; !ok {
				return ErrLocationNotOwned
			}
			keep[*reqs[i].ID] = struct{}{}
			if err := tx.Save(loc).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(loc).Error; err != nil {
				return err
			}
		}
	}

	for i := range existing {
		if _, ok := keep[existing[i].CourseLocationID]; !ok {
			if err := tx.Delete(&existing[i]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func writeLinks(tx *gorm.DB, courseID uuid.UUID, req dto.CourseUpsertRequest) error {
	for _, id := range req.AreaIDs {
		if err := tx.Create(&model.CourseAreaLinkModel{CourseID: courseID, AreaID: id}).Error; err != nil {
			return err
		}
	}
	for _, id := range req.AgeIDs {
		if err := tx.Create(&model.CourseAgeLinkModel{CourseID: courseID, AgeID: id}).Error; err != nil {
			return err
		}
	}
	for _, id := range req.LanguageIDs {
		if err := tx.Create(&model.CourseLanguageLinkModel{CourseID: courseID, LanguageID: id}).Error; err != nil {
			return err
		}
	}
	return nil
}

func clearLinks(tx *gorm.DB, courseID uuid.UUID) error {
	if err := tx.Where("course_id = ?", courseID).Delete(&model.CourseAreaLinkModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("course_id = ?", courseID).Delete(&model.CourseAgeLinkModel{}).Error; err != nil {
		return err
	}
	return tx.Where("course_id = ?", courseID).Delete(&model.CourseLanguageLinkModel{}).Error
}

// LinkIDs loads the m2m taxonomy ids for a course.
func LinkIDs(db *gorm.DB, courseID uuid.UUID) (areaIDs, ageIDs, langIDs []uuid.UUID, err error) {
	var areas []model.CourseAreaLinkModel
	if err = db.Where("course_id = ?", courseID).Find(&areas).Error; err != nil {
		return
	}
	for i := range areas {
		areaIDs = append(areaIDs, areas[i].AreaID)
	}

	var ages []model.CourseAgeLinkModel
	if err = db.Where("course_id = ?", courseID).Find(&ages).Error; err != nil {
		return
	}
	for i := range ages {
		ageIDs = append(ageIDs, ages[i].AgeID)
	}

	var langs []model.CourseLanguageLinkModel
	if err = db.Where("course_id = ?", courseID).Find(&langs).Error; err != nil {
		return
	}
	for i := range langs {
		langIDs = append(langIDs, langs[i].LanguageID)
	}
	return
}

// Locations loads the dependent collection for a course.
func Locations(db *gorm.DB, courseID uuid.UUID) ([]model.CourseLocationModel, error) {
	var rows []model.CourseLocationModel
	err := db.Where("course_location_course_id = ?", courseID).Find(&rows).Error
	return rows, err
}

/* =========================================================
   SEARCH
   ========================================================= */

// SearchFilters: browse filters available to anonymous/student visitors.
// uuid.Nil means "not filtered".
type SearchFilters struct {
	AreaID         uuid.UUID
	CityID         uuid.UUID
	CenterID       uuid.UUID
	LevelID        uuid.UUID
	AgeID          uuid.UUID
	LanguageID     uuid.UUID
	LocationTypeID uuid.UUID
}

func Search(db *gorm.DB, f SearchFilters, orderClause string, offset, limit int) ([]model.CourseModel, int64, error) {
	q := db.Model(&model.CourseModel{})

	if f.CityID != uuid.Nil {
		q = q.Where("course_city_id = ?", f.CityID)
	}
	if f.CenterID != uuid.Nil {
		q = q.Where("course_center_id = ?", f.CenterID)
	}
	if f.LevelID != uuid.Nil {
		q = q.Where("course_level_id = ?", f.LevelID)
	}
	if f.AreaID != uuid.Nil {
		q = q.Where("course_id IN (?)", db.Model(&model.CourseAreaLinkModel{}).
			Select("course_id").Where("course_area_id = ?", f.AreaID))
	}
	if f.AgeID != uuid.Nil {
		q = q.Where("course_id IN (?)", db.Model(&model.CourseAgeLinkModel{}).
			Select("course_id").Where("course_age_id = ?", f.AgeID))
	}
	if f.LanguageID != uuid.Nil {
		q = q.Where("course_id IN (?)", db.Model(&model.CourseLanguageLinkModel{}).
			Select("course_id").Where("course_language_id = ?", f.LanguageID))
	}
	if f.LocationTypeID != uuid.Nil {
		q = q.Where("course_id IN (?)", db.Model(&model.CourseLocationModel{}).
			Select("course_location_course_id").Where("course_location_type_id = ?", f.LocationTypeID))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.CourseModel
	if err := q.Order(orderClause).Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
