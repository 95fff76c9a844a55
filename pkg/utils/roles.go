package utils

const (
	RoleElder  = "elder"
	RoleDoctor = "doctor"
)

var ValidRoles = []string{RoleElder, RoleDoctor}
