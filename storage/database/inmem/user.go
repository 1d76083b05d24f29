package inmemdb

import (
	"strings"

	"github.com/trezcool/edutrack/core/user"
)

type userRepository struct {
	db *table[user.User]
}

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

// checkUniqueness must be called with a lock held.
func (repo *userRepository) checkUniqueness(usr user.User) error {
	for id, u := range repo.db.rows {
		if id == usr.ID {
			continue
		}
		if u.Username == usr.Username {
			return user.ErrUsernameExists
		}
		if u.Email == usr.Email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr.ID = 0
	if err := repo.checkUniqueness(usr); err != nil {
		return user.User{}, err
	}
	usr.ID = repo.db.nextPK()
	repo.db.rows[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	if usr, ok := repo.db.get(id); ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) getBy(match func(u *user.User) bool) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if users := repo.db.filter(match); len(users) > 0 {
		return users[0], nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	return repo.getBy(func(u *user.User) bool { return u.Username == username })
}

func (repo *userRepository) GetUserByUsernameOrEmail(username string) (user.User, error) {
	return repo.getBy(func(u *user.User) bool { return u.Username == username || u.Email == username })
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	search := strings.ToLower(filter.Search)
	return repo.db.filter(func(u *user.User) bool {
		if len(filter.Roles) > 0 && !contains(filter.Roles, u.Role) {
			return false
		}
		if search != "" {
			return strings.Contains(strings.ToLower(u.FirstName), search) ||
				strings.Contains(strings.ToLower(u.LastName), search) ||
				strings.Contains(strings.ToLower(u.Username), search) ||
				strings.Contains(strings.ToLower(u.Email), search)
		}
		return true
	}), nil
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origUsr, ok := repo.db.rows[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if err := repo.checkUniqueness(usr); err != nil {
		return user.User{}, err
	}

	// only save set fields
	if usr.PasswordHash != nil {
		origUsr.PasswordHash = usr.PasswordHash
	}
	if usr.Role != "" {
		origUsr.Role = usr.Role
	}
	origUsr.Username = usr.Username
	origUsr.Email = usr.Email
	origUsr.FirstName = usr.FirstName
	origUsr.LastName = usr.LastName
	origUsr.SubjectAreas = usr.SubjectAreas
	origUsr.GradeLevels = usr.GradeLevels
	origUsr.UpdatedAt = usr.UpdatedAt
	return *origUsr, nil
}

func contains(values []string, v string) bool {
	for _, val := range values {
		if val == v {
			return true
		}
	}
	return false
}
