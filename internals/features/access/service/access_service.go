package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"opencourse_backend/internals/constants"
	"opencourse_backend/internals/features/access/model"
)

// Object-scoped capabilities. Checking access for an operation requires BOTH
// the capability class (derived from the user's role) and the per-object grant.
const (
	CapManageCourse      = "manage_course"
	CapManageCenter      = "manage_center"
	CapManageHandout     = "manage_handout"
	CapManageEnrollment  = "manage_enrollment"
	CapManageJoinRequest = "manage_join_request"
)

// roleCapabilities maps a role to its capability classes. Students manage
// nothing: their handout access is relationship-gated, not grant-based.
var roleCapabilities = map[string]map[string]struct{}{
	constants.RoleProfessor: {
		CapManageCourse:      {},
		CapManageCenter:      {},
		CapManageHandout:     {},
		CapManageEnrollment:  {},
		CapManageJoinRequest: {},
	},
	constants.RoleStudent: {},
}

func HasCapability(role, capability string) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	_, ok = caps[capability]
	return ok
}

// Grant writes a per-object grant. Meant to run inside the transaction that
// creates the object, so a failed grant rolls the object back too.
func Grant(tx *gorm.DB, userID uuid.UUID, capability string, objectID uuid.UUID) error {
	return tx.Create(&model.PermissionGrantModel{
		PermissionGrantUserID:     userID,
		PermissionGrantCapability: capability,
		PermissionGrantObjectID:   objectID,
	}).Error
}

// HasGrant reports whether the per-object grant row exists. Evaluated per
// request; results are never cached.
func HasGrant(db *gorm.DB, userID uuid.UUID, capability string, objectID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&model.PermissionGrantModel{}).
		Where("permission_grant_user_id = ? AND permission_grant_capability = ? AND permission_grant_object_id = ?",
			userID, capability, objectID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CanManage is the full check of both conditions: capability class via role,
// then the object-scoped grant.
func CanManage(db *gorm.DB, userID uuid.UUID, role, capability string, objectID uuid.UUID) (bool, error) {
	if !HasCapability(role, capability) {
		return false, nil
	}
	return HasGrant(db, userID, capability, objectID)
}

// RevokeObject removes every grant pointing at an object. Called when the
// object itself is deleted.
func RevokeObject(tx *gorm.DB, capability string, objectID uuid.UUID) error {
	return tx.
		Where("permission_grant_capability = ? AND permission_grant_object_id = ?", capability, objectID).
		Delete(&model.PermissionGrantModel{}).Error
}
