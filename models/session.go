package models

import "github.com/google/uuid"

// SessionView is the read model of a customization session
type SessionView struct {
	SessionID uuid.UUID            `json:"sessionId"`
	Version   int64                `json:"version"`
	Artwork   *Artwork             `json:"artwork"`
	Options   CustomizationOptions `json:"options"`
	Price     *PricedConfiguration `json:"price,omitempty"`
	Preview   *PreviewLayout       `json:"preview,omitempty"`
}
