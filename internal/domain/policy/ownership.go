// Package policy holds authorization predicates shared by mutating operations.
package policy

import "github.com/oksasatya/go-project-marketplace/internal/domain/entity"

// CanMutate reports whether actingUserID may update or delete p.
// Only the author may; an empty acting user never may.
func CanMutate(actingUserID string, p entity.Project) bool {
	return actingUserID != "" && p.Author.ID == actingUserID
}
