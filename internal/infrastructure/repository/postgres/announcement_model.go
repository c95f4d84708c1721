package postgres

import "time"

type announcementTableModel struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Author    string    `db:"author"`
	Page      string    `db:"page"`
	CreatedAt time.Time `db:"created_at"`
}

type announcementWriteModel struct {
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Author    string    `db:"author"`
	Page      string    `db:"page"`
	CreatedAt time.Time `db:"created_at"`
}
