package sqlite

import (
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"

	"github.com/dekarrin/codex/server/dao"
)

// This file has the conversions between the types used in DAO entities and
// the types stored in the DB columns.

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*target = u
	return nil
}

func convertToDB_Role(r dao.Role) string {
	return r.String()
}

func convertFromDB_Role(s string, target *dao.Role) error {
	r, err := dao.ParseRole(s)
	if err != nil {
		return err
	}
	*target = r
	return nil
}

func convertToDB_Email(email *mail.Address) string {
	if email == nil {
		return ""
	}
	return email.Address
}

func convertFromDB_Email(s string, target **mail.Address) error {
	if s == "" {
		*target = nil
		return nil
	}
	email, err := mail.ParseAddress(s)
	if err != nil {
		return err
	}
	*target = email
	return nil
}

// times are stored as unix seconds; the zero time is stored as 0 so that it
// reads back as the zero time.
func convertToDB_Time(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func convertFromDB_Time(i int64, target *time.Time) error {
	if i == 0 {
		*target = time.Time{}
		return nil
	}
	*target = time.Unix(i, 0)
	return nil
}

func convertToDB_Bool(b bool) int {
	if b {
		return 1
	}
	return 0
}

func convertFromDB_Bool(i int, target *bool) error {
	switch i {
	case 0:
		*target = false
	case 1:
		*target = true
	default:
		return fmt.Errorf("not 0 or 1: %d", i)
	}
	return nil
}

// rule lists are stored one rule per line.
func convertToDB_Rules(rules []string) string {
	return strings.Join(rules, "\n")
}

func convertFromDB_Rules(s string, target *[]string) error {
	if s == "" {
		*target = nil
		return nil
	}
	*target = strings.Split(s, "\n")
	return nil
}

// puzzle state is stored as the base64 of its REZI binary encoding.
func convertToDB_PuzzleState(ps puzzleState) string {
	return base64.StdEncoding.EncodeToString(rezi.EncBinary(ps))
}

func convertFromDB_PuzzleState(s string, target *puzzleState) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	_, err = rezi.DecBinary(data, target)
	return err
}
