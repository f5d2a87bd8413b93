package payload

type CreateMedicationRequest struct {
	Name         string `json:"name"         validate:"required"`
	Interactions any    `json:"interactions"`
	Source       string `json:"source"`
}

type CreateMedicationResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Name    string `json:"name"`
}

type CreateMedicationsResponse struct {
	Message string         `json:"message"`
	Count   int            `json:"count"`
	IDs     map[int]string `json:"ids"`
	Names   []string       `json:"names"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ExpiredTokenResponse carries the expiry timestamp alongside the generic
// message so clients can tell an expired token from an invalid one.
type ExpiredTokenResponse struct {
	Message   string `json:"message"`
	ExpiredAt string `json:"expiredAt"`
}
