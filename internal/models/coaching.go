package models

// CoachingType is a fixed catalog entry selecting price and service
// description. The catalog is static; unknown codes are validation errors.
type CoachingType struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Minutes     int    `json:"minutes"`
}

var coachingCatalog = []CoachingType{
	{Code: "vod-review", Name: "VOD Review", AmountCents: 3500, Currency: "usd", Minutes: 60},
	{Code: "replay-review", Name: "Replay Review", AmountCents: 2500, Currency: "usd", Minutes: 45},
	{Code: "live-session", Name: "Live 1-on-1 Session", AmountCents: 5000, Currency: "usd", Minutes: 60},
	{Code: "team-review", Name: "Team VOD Review", AmountCents: 9000, Currency: "usd", Minutes: 90},
}

// CoachingTypes returns the full catalog.
func CoachingTypes() []CoachingType {
	out := make([]CoachingType, len(coachingCatalog))
	copy(out, coachingCatalog)
	return out
}

// CoachingTypeByCode looks up a catalog entry.
func CoachingTypeByCode(code string) (CoachingType, bool) {
	for _, ct := range coachingCatalog {
		if ct.Code == code {
			return ct, true
		}
	}
	return CoachingType{}, false
}
