package userserver

// User is the JSON shape of a user record. The id is assigned by the server;
// a client-supplied id is ignored on create.
type User struct {
	Id        string `json:"id" doc:"The auto-generated id of the user" example:"d5fE_asz"`
	FirstName string `json:"first_name" binding:"required" doc:"The user's first name" example:"John"`
	LastName  string `json:"last_name" binding:"required" doc:"The user's last name" example:"Doe"`
	Email     string `json:"email" binding:"required" doc:"The user's email" example:"johndoe@example.com"`
}

// UserPatch is the body of a partial update; absent fields stay nil.
type UserPatch struct {
	FirstName *string `json:"first_name,omitempty" doc:"New first name"`
	LastName  *string `json:"last_name,omitempty" doc:"New last name"`
	Email     *string `json:"email,omitempty" doc:"New email"`
}

// Health is the body returned by the liveness probe.
type Health struct {
	Status string `json:"status" example:"ok"`
}
