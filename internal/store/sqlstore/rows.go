package sqlstore

import "hri-companion/internal/store"

// Cells stay string-typed end to end so records round-trip byte-exact with
// the spreadsheet adapter. created_at in particular is text, not a DATETIME.

type userRow struct {
	Seq          uint64 `gorm:"primaryKey;autoIncrement"`
	UserID       string `gorm:"column:user_id;size:64;not null;uniqueIndex"`
	Email        string `gorm:"size:128;not null;index"`
	PasswordHash string `gorm:"size:255;not null"`
	FullName     string `gorm:"size:128;not null"`
	Role         string `gorm:"size:16;not null"`
	CreatedAt    string `gorm:"size:32;not null"`
}

func (userRow) TableName() string { return store.Users.Name }

type childRow struct {
	Seq         uint64 `gorm:"primaryKey;autoIncrement"`
	ChildID     string `gorm:"column:child_id;size:64;not null;uniqueIndex"`
	OwnerUserID string `gorm:"column:owner_user_id;size:64;not null;index"`
	Nickname    string `gorm:"size:128;not null"`
	Age         string `gorm:"size:8;not null"`
	CommLevel   string `gorm:"column:comm_level;size:16"`
	Personality string `gorm:"size:16"`
	Notes       string `gorm:"type:text;not null"`
	Preferences string `gorm:"type:text"`
	Keywords    string `gorm:"type:text;not null"`
	CreatedAt   string `gorm:"size:32;not null"`
}

func (childRow) TableName() string { return store.Children.Name }

type sessionRow struct {
	Seq         uint64 `gorm:"primaryKey;autoIncrement"`
	SessionID   string `gorm:"column:session_id;size:64;not null;uniqueIndex"`
	ChildID     string `gorm:"column:child_id;size:64;not null;index"`
	OwnerUserID string `gorm:"column:owner_user_id;size:64;not null;index"`
	Mood        string `gorm:"size:16"`
	Environment string `gorm:"size:64"`
	Context     string `gorm:"type:text;not null"`
	Prompt      string `gorm:"type:text;not null"`
	CreatedAt   string `gorm:"size:32;not null"`
}

func (sessionRow) TableName() string { return store.Sessions.Name }

func userRowFrom(row store.Row) *userRow {
	return &userRow{
		UserID:       row["user_id"],
		Email:        row["email"],
		PasswordHash: row["password_hash"],
		FullName:     row["full_name"],
		Role:         row["role"],
		CreatedAt:    row["created_at"],
	}
}

func (r userRow) toRow() store.Row {
	return store.Row{
		"user_id":       r.UserID,
		"email":         r.Email,
		"password_hash": r.PasswordHash,
		"full_name":     r.FullName,
		"role":          r.Role,
		"created_at":    r.CreatedAt,
	}
}

func childRowFrom(row store.Row) *childRow {
	return &childRow{
		ChildID:     row["child_id"],
		OwnerUserID: row["owner_user_id"],
		Nickname:    row["nickname"],
		Age:         row["age"],
		CommLevel:   row["comm_level"],
		Personality: row["personality"],
		Notes:       row["notes"],
		Preferences: row["preferences"],
		Keywords:    row["keywords"],
		CreatedAt:   row["created_at"],
	}
}

func (r childRow) toRow() store.Row {
	return store.Row{
		"child_id":      r.ChildID,
		"owner_user_id": r.OwnerUserID,
		"nickname":      r.Nickname,
		"age":           r.Age,
		"comm_level":    r.CommLevel,
		"personality":   r.Personality,
		"notes":         r.Notes,
		"preferences":   r.Preferences,
		"keywords":      r.Keywords,
		"created_at":    r.CreatedAt,
	}
}

func sessionRowFrom(row store.Row) *sessionRow {
	return &sessionRow{
		SessionID:   row["session_id"],
		ChildID:     row["child_id"],
		OwnerUserID: row["owner_user_id"],
		Mood:        row["mood"],
		Environment: row["environment"],
		Context:     row["context"],
		Prompt:      row["prompt"],
		CreatedAt:   row["created_at"],
	}
}

func (r sessionRow) toRow() store.Row {
	return store.Row{
		"session_id":    r.SessionID,
		"child_id":      r.ChildID,
		"owner_user_id": r.OwnerUserID,
		"mood":          r.Mood,
		"environment":   r.Environment,
		"context":       r.Context,
		"prompt":        r.Prompt,
		"created_at":    r.CreatedAt,
	}
}
