package model

// Booking is a reserved time slot. Field names follow the public wire
// format: date is YYYY-MM-DD and the times are zero-padded HH:MM, all
// normalized before persistence.
type Booking struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	User      string `json:"user" bson:"user" validate:"required"`
	Date      string `json:"date" bson:"date" validate:"required,dateshape"`
	StartTime string `json:"startTime" bson:"startTime" validate:"required,timeofday"`
	EndTime   string `json:"endTime" bson:"endTime" validate:"required,timeofday"`
}
