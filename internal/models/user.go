package models

// User is the record served by the user REST service.
type User struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}
