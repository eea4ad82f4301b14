package db

import (
	"database/sql"
	"fmt"
)

// ChannelNoteKey stores the Discord channel we DM scheduled milestones to.
// It is set the first time the user DMs the bot.
const ChannelNoteKey = "discord_channel_id"

// GetNote retrieves a note by key. A missing key is not an error.
func (d *DB) GetNote(key string) (string, error) {
	var value string
	err := d.conn.QueryRow("SELECT value FROM notes WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting note: %w", err)
	}
	return value, nil
}

// SetNote stores or updates a note by key.
func (d *DB) SetNote(key, value string) error {
	_, err := d.conn.Exec(
		"INSERT INTO notes (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = datetime('now')",
		key, value, value,
	)
	if err != nil {
		return fmt.Errorf("setting note: %w", err)
	}
	return nil
}

// Delivery is one sent milestone, as journaled.
type Delivery struct {
	ID          int64  `json:"id"`
	MilestoneID int    `json:"milestone_id"`
	Category    string `json:"category"`
	Mode        string `json:"mode"`
	Content     string `json:"content"`
	SentAt      string `json:"sent_at"`
}

// RecordDelivery journals a sent milestone.
func (d *DB) RecordDelivery(milestoneID int, category, mode, content string) error {
	_, err := d.conn.Exec(
		"INSERT INTO deliveries (milestone_id, category, mode, content) VALUES (?, ?, ?, ?)",
		milestoneID, category, mode, content,
	)
	if err != nil {
		return fmt.Errorf("recording delivery: %w", err)
	}
	return nil
}

// RecentDeliveries returns the latest deliveries, newest first.
func (d *DB) RecentDeliveries(limit int) ([]Delivery, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.conn.Query(
		"SELECT id, milestone_id, category, mode, content, sent_at FROM deliveries ORDER BY sent_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}
	defer rows.Close()

	var out []Delivery
	for rows.Next() {
		var del Delivery
		if err := rows.Scan(&del.ID, &del.MilestoneID, &del.Category, &del.Mode, &del.Content, &del.SentAt); err != nil {
			return nil, fmt.Errorf("scanning delivery: %w", err)
		}
		out = append(out, del)
	}
	return out, rows.Err()
}

// DeliveryCount returns how many milestones have ever been sent.
func (d *DB) DeliveryCount() (int, error) {
	var n int
	if err := d.conn.QueryRow("SELECT COUNT(*) FROM deliveries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting deliveries: %w", err)
	}
	return n, nil
}
