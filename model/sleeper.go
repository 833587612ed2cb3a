package model

// SleeperUser is a Sleeper account, looked up by username or user id.
type SleeperUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarID    string `json:"avatar_id,omitempty"`
}

// TrendingPlayer is one entry from Sleeper's most-added or most-dropped
// lists. Count is the number of adds or drops in the lookback window.
type TrendingPlayer struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}
