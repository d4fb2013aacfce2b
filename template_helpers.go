package accounts

import "maps"

var TemplateUserKey = "current_user"

// TemplateHelpers returns helper functions and data for the view
// engine's global context.
//
// In templates:
//
//	{% if current_user %}
//	{% if has_role(current_user, "admin") %}
func TemplateHelpers() map[string]any {
	return map[string]any{
		"is_authenticated": isAuthenticated,
		"has_role":         hasRole,

		"roles": map[string]string{
			"guest":  string(RoleGuest),
			"member": string(RoleMember),
			"admin":  string(RoleAdmin),
			"owner":  string(RoleOwner),
		},
	}
}

// GetTemplateUser renders a user record down to the safe subset the
// views are allowed to see. Never hand the raw model to a template.
func GetTemplateUser(user *User) map[string]any {
	if user == nil {
		return nil
	}

	return map[string]any{
		"id":         user.ID.String(),
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"full_name":  user.FullName(),
		"phone":      user.Phone,
		"role":       string(user.Role),
		"is_active":  user.IsActive,
	}
}

// MergeTemplateData merges extra values over a base template context
func MergeTemplateData(base map[string]any, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}

// isAuthenticated checks if the provided user object is not nil
func isAuthenticated(user any) bool {
	switch u := user.(type) {
	case *User:
		return u != nil
	case User:
		return true
	case AuthClaims:
		return u != nil && u.UserID() != ""
	case map[string]any:
		return len(u) > 0
	default:
		return false
	}
}

// hasRole checks if the user has the specified role
func hasRole(user any, role string) bool {
	targetRole := UserRole(role)

	switch u := user.(type) {
	case *User:
		if u == nil {
			return false
		}
		return u.Role == targetRole
	case User:
		return u.Role == targetRole
	case AuthClaims:
		if u == nil {
			return false
		}
		return u.Role() == role
	case map[string]any:
		if userRole, exists := u["role"]; exists {
			if roleStr, ok := userRole.(string); ok {
				return UserRole(roleStr) == targetRole
			}
		}
		return false
	default:
		return false
	}
}
