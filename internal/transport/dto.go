package transport

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Amount      int     `json:"amount"`
	Price       float64 `json:"price"`
	Categories  []uint  `json:"categories"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
