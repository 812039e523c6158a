package formaterror

import "strings"

// FormatError turns a database or auth error message into user-facing messages.
func FormatError(err string) map[string]string {
	errorMessages := make(map[string]string)
	lower := strings.ToLower(err)

	switch {
	case strings.Contains(lower, "uid"):
		errorMessages["Taken_uid"] = "UID Already Taken"
	case strings.Contains(lower, "email"):
		errorMessages["Taken_email"] = "Email Already Taken"
	case strings.Contains(lower, "hashedpassword"):
		errorMessages["Incorrect_password"] = "Incorrect Password"
	case strings.Contains(lower, "record not found"):
		errorMessages["No_record"] = "No Record Found"
	}

	if len(errorMessages) == 0 {
		errorMessages["Incorrect_details"] = "Incorrect Details"
	}
	return errorMessages
}
