package entity

// User is a registered account with its accumulated play statistics.
type User struct {
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Games        int    `json:"games"`
	Wins         int    `json:"wins"`
	BestScore    int    `json:"bestScore"`
	BestWord     string `json:"bestWord"`
}
