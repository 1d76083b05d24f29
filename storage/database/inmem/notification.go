package inmemdb

import "github.com/trezcool/edutrack/core/notification"

type notificationRepository struct {
	db *table[notification.Notification]
}

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db.notification}
}

func (repo *notificationRepository) CreateNotification(n notification.Notification) (notification.Notification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n.ID = repo.db.nextPK()
	repo.db.rows[n.ID] = &n
	return n, nil
}

func (repo *notificationRepository) GetNotificationByID(id int) (notification.Notification, error) {
	if n, ok := repo.db.get(id); ok {
		return n, nil
	}
	return notification.Notification{}, notification.ErrNotFound
}

func (repo *notificationRepository) FilterNotificationsByUser(userID int) ([]notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.filter(func(n *notification.Notification) bool { return n.UserID == userID }), nil
}

func (repo *notificationRepository) MarkNotificationRead(id int) (notification.Notification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n, ok := repo.db.rows[id]
	if !ok {
		return notification.Notification{}, notification.ErrNotFound
	}
	n.Read = true
	return *n, nil
}
