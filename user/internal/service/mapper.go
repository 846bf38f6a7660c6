package service

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Alturino/tourism/internal/repository"
	"github.com/Alturino/tourism/user/pkg/response"
)

func textOf(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func userResponse(u repository.User) response.User {
	res := response.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     textOf(u.Phone),
		FirstName: textOf(u.FirstName),
		LastName:  textOf(u.LastName),
		Address:   textOf(u.Address),
		IsSafe:    u.IsSafe,
		CreatedAt: u.CreatedAt.Time,
	}
	if u.Latitude.Valid && u.Longitude.Valid {
		res.Location = &response.Location{
			Latitude:  u.Latitude.Float64,
			Longitude: u.Longitude.Float64,
			Address:   textOf(u.LocationAddress),
		}
		if u.LocationUpdatedAt.Valid {
			res.Location.UpdatedAt = &u.LocationUpdatedAt.Time
		}
	}
	return res
}

func optionalText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
