package i18n

var catalogs = map[string]map[string]string{
	"en": {
		"user_created_otp_sent":      "User created and OTP sent successfully",
		"otp_sent":                   "OTP sent successfully",
		"otp_verified":               "OTP verified successfully",
		"fcm_token_updated":          "FCM token updated successfully",
		"logout_successful":          "Logout successful",
		"profile_fetched":            "Profile fetched successfully",
		"otp_sent_for_phone_change":  "OTP sent for phone number change",
		"phone_verified_and_updated": "Phone number verified and updated successfully",
		"success":                    "Success",
		"user_created":               "User created successfully",
		"user_updated":               "User updated successfully",
		"user_deleted":               "User deleted successfully",
		"session_updated":            "Session updated successfully",
		"session_deleted":            "Session deleted successfully",
		"otp_data_created":           "OTP data created successfully",
		"otp_data_updated":           "OTP data updated successfully",
		"otp_data_deleted":           "OTP data deleted successfully",
		"temp_phone_created":         "Temporary phone created successfully",
		"temp_phone_updated":         "Temporary phone updated successfully",
		"temp_phone_deleted":         "Temporary phone deleted successfully",
		"something_went_wrong":       "Something went wrong",
		"route_not_found":            "Route not found",

		"error.USER_NOT_FOUND":       "User not found",
		"error.OTP_NOT_FOUND":        "OTP not found. Please request a new OTP.",
		"error.INVALID_OTP":          "Invalid OTP",
		"error.SESSION_NOT_FOUND":    "User session not found",
		"error.OTP_DATA_NOT_FOUND":   "OTP data not found",
		"error.TEMP_PHONE_NOT_FOUND": "Temporary phone not found",
		"error.PHONE_IN_USE":         "Phone number is already registered",
		"error.OTP_DATA_EXISTS":      "OTP data already exists for this user",
		"error.TEMP_PHONE_EXISTS":    "A phone change is already pending for this user",
		"error.MISSING_AUTH":         "Authorization header is missing",
		"error.INVALID_TOKEN":        "Invalid or expired token",
		"error.TOKEN_EXPIRED":        "Token expired",
		"error.NOT_AUTHENTICATED":    "User not authenticated",
		"error.VALIDATION_FAILED":    "Validation failed",
		"error.INVALID_BODY":         "Invalid request body",
		"error.INVALID_ID":           "Invalid ID",
		"error.TOO_MANY_REQUESTS":    "Too many requests, please try again later",
	},
	"it": {
		"user_created_otp_sent":      "Utente creato e OTP inviato con successo",
		"otp_sent":                   "OTP inviato con successo",
		"otp_verified":               "OTP verificato con successo",
		"fcm_token_updated":          "Token FCM aggiornato con successo",
		"logout_successful":          "Disconnessione riuscita",
		"profile_fetched":            "Profilo recuperato con successo",
		"otp_sent_for_phone_change":  "OTP inviato per il cambio del numero di telefono",
		"phone_verified_and_updated": "Numero di telefono verificato e aggiornato con successo",
		"success":                    "Successo",
		"user_created":               "Utente creato con successo",
		"user_updated":               "Utente aggiornato con successo",
		"user_deleted":               "Utente eliminato con successo",
		"session_updated":            "Sessione aggiornata con successo",
		"session_deleted":            "Sessione eliminata con successo",
		"otp_data_created":           "Dati OTP creati con successo",
		"otp_data_updated":           "Dati OTP aggiornati con successo",
		"otp_data_deleted":           "Dati OTP eliminati con successo",
		"temp_phone_created":         "Telefono temporaneo creato con successo",
		"temp_phone_updated":         "Telefono temporaneo aggiornato con successo",
		"temp_phone_deleted":         "Telefono temporaneo eliminato con successo",
		"something_went_wrong":       "Qualcosa è andato storto",
		"route_not_found":            "Percorso non trovato",

		"error.USER_NOT_FOUND":       "Utente non trovato",
		"error.OTP_NOT_FOUND":        "OTP non trovato. Richiedi un nuovo OTP.",
		"error.INVALID_OTP":          "OTP non valido",
		"error.SESSION_NOT_FOUND":    "Sessione utente non trovata",
		"error.OTP_DATA_NOT_FOUND":   "Dati OTP non trovati",
		"error.TEMP_PHONE_NOT_FOUND": "Telefono temporaneo non trovato",
		"error.PHONE_IN_USE":         "Numero di telefono già registrato",
		"error.OTP_DATA_EXISTS":      "Esistono già dati OTP per questo utente",
		"error.TEMP_PHONE_EXISTS":    "È già in corso un cambio di numero per questo utente",
		"error.MISSING_AUTH":         "Intestazione di autorizzazione mancante",
		"error.INVALID_TOKEN":        "Token non valido o scaduto",
		"error.TOKEN_EXPIRED":        "Token scaduto",
		"error.NOT_AUTHENTICATED":    "Utente non autenticato",
		"error.VALIDATION_FAILED":    "Convalida non riuscita",
		"error.INVALID_BODY":         "Corpo della richiesta non valido",
		"error.INVALID_ID":           "ID non valido",
		"error.TOO_MANY_REQUESTS":    "Troppe richieste, riprova più tardi",
	},
}
