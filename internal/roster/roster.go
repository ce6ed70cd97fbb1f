package roster

import (
	"fmt"
	"strings"

	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/models"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/shared"
	"github.com/jocimarsoliveira81-sudo/playlistvote/internal/token"
)

// EnsureAdmin prepends the primary admin when no user in the roster
// matches its login key. Idempotent; never duplicates.
func EnsureAdmin(users []models.User) []models.User {
	admin := models.PrimaryAdmin()
	for _, u := range users {
		if u.LoginKey() == admin.LoginKey() {
			return users
		}
	}
	return append([]models.User{admin}, users...)
}

// FindByLoginKey returns the first user whose email or username matches
// the normalized login key.
func FindByLoginKey(users []models.User, key string) (models.User, bool) {
	for _, u := range users {
		if u.MatchesLogin(key) {
			return u, true
		}
	}
	return models.User{}, false
}

// Authenticate matches a login key case-insensitively and the secret
// exactly (after trimming). An unapproved match is rejected with
// [shared.ErrNotApproved] rather than the generic credential error so the
// user learns they are still waiting on the admin.
func Authenticate(loginKey, secret string, users []models.User) (models.User, error) {
	secret = strings.TrimSpace(secret)

	for _, u := range users {
		if !u.MatchesLogin(loginKey) || u.Password != secret {
			continue
		}
		if !u.IsApproved {
			return models.User{}, shared.ErrNotApproved
		}
		return u, nil
	}
	return models.User{}, shared.ErrInvalidCredentials
}

// Profile is the information a prospective member supplies when asking to
// join.
type Profile struct {
	Name     string
	Email    string
	Whatsapp string
	Password string
}

// CreateRequestToken builds the request code a prospective member sends to
// the admin. Pure: nothing is persisted on either side until approval.
func CreateRequestToken(p Profile) (string, error) {
	email := shared.NormalizeLoginKey(p.Email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", shared.ErrMissingArgument)
	}
	if strings.TrimSpace(p.Password) == "" {
		return "", fmt.Errorf("%w: password is required", shared.ErrMissingArgument)
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user := models.User{
		ID:         shared.GenerateID(),
		Name:       name,
		Username:   strings.SplitN(email, "@", 2)[0],
		Email:      email,
		Whatsapp:   strings.TrimSpace(p.Whatsapp),
		Password:   strings.TrimSpace(p.Password),
		Role:       models.RoleUser,
		IsApproved: false,
	}
	return token.EncodeJoinRequest(user)
}

// Approve consumes a request code and appends the member to the roster
// with approval forced on. Fails with [shared.ErrDuplicateLoginKey] when
// the login key is already registered; the roster is left untouched on
// any failure.
func Approve(requestToken string, users []models.User) ([]models.User, error) {
	req, err := token.DecodeJoinRequest(requestToken)
	if err != nil {
		return nil, err
	}

	if _, exists := FindByLoginKey(users, req.User.LoginKey()); exists {
		return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateLoginKey, req.User.LoginKey())
	}

	member := req.User
	member.IsApproved = true
	return append(append([]models.User{}, users...), member), nil
}

// Register adds a member directly, pre-approved, the way the admin screen
// registers accounts. Duplicate login keys are rejected.
func Register(p Profile, role models.Role, users []models.User) ([]models.User, error) {
	email := shared.NormalizeLoginKey(p.Email)
	if email == "" || strings.TrimSpace(p.Password) == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrMissingArgument)
	}
	if _, exists := FindByLoginKey(users, email); exists {
		return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateLoginKey, email)
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	member := models.User{
		ID:         shared.GenerateID(),
		Name:       name,
		Username:   strings.SplitN(email, "@", 2)[0],
		Email:      email,
		Whatsapp:   strings.TrimSpace(p.Whatsapp),
		Password:   strings.TrimSpace(p.Password),
		Role:       role,
		IsApproved: true,
	}
	return append(append([]models.User{}, users...), member), nil
}

// ResetPassword sets a new password for the given user.
func ResetPassword(users []models.User, userID, newPassword string) ([]models.User, error) {
	newPassword = strings.TrimSpace(newPassword)
	if newPassword == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", shared.ErrInvalidArgument)
	}

	updated := make([]models.User, len(users))
	found := false
	for i, u := range users {
		if u.ID == userID {
			u.Password = newPassword
			found = true
		}
		updated[i] = u
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, userID)
	}
	return updated, nil
}

// Delete removes a member. The primary admin is undeletable.
func Delete(users []models.User, userID string) ([]models.User, error) {
	if userID == models.PrimaryAdminID {
		return nil, shared.ErrAdminImmutable
	}

	remaining := make([]models.User, 0, len(users))
	found := false
	for _, u := range users {
		if u.ID == userID {
			found = true
			continue
		}
		remaining = append(remaining, u)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, userID)
	}
	return remaining, nil
}

// CreateFullSyncToken builds the church sync code the admin redistributes
// after approving a member, so every device converges on the same roster
// and catalog.
func CreateFullSyncToken(users []models.User, songs []models.Song) (string, error) {
	return token.EncodeFullSync(EnsureAdmin(users), songs)
}

// ImportFullSync decodes a church sync code. The result overwrites both
// local collections wholesale; unlike the playlist path it never merges.
func ImportFullSync(tok string) (users []models.User, songs []models.Song, err error) {
	snap, err := token.DecodeFullSync(tok)
	if err != nil {
		return nil, nil, err
	}
	return EnsureAdmin(snap.Users), snap.Songs, nil
}
