package domain

type User struct {
	ID             string  `db:"id"`
	Name           string  `db:"name"`
	Email          string  `db:"email"`
	HashedPassword string  `db:"hashed_password"`
	IsSeller       bool    `db:"is_seller"`
	Avatar         *string `db:"avatar"`
	Bio            *string `db:"bio"`
	CreatedAt      int64   `db:"created_at"`
}
