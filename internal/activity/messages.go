package activity

import "github.com/go-drift/apppermission/pkg/permission"

// Result label texts.
const (
	StorageGrantedText = "Storage permission is already granted\nDo Work"
	StorageDeniedText  = "We can only save the file when storage permission is granted. " +
		"We will only use this permission for saving file"

	LocationGrantedText           = "Location permission is already granted\nDo Work"
	ForegroundLocationGrantedText = "Only foreground Location permission is already granted\nDo Work"
	LocationDeniedText            = "We can only give local weather, when location permission is granted. " +
		"We will only use this permission for giving local weather only"
)

// Rationale dialogs.
var (
	StorageRationale = Rationale{
		Title:   "Allow Storage Permission",
		Message: "In order to save the file, allow storage permission.\n\nWe will only use this permission for saving file",
		Icon:    "ic_save_black_24dp",
	}
	LocationRationale = Rationale{
		Title:   "Allow Location Permission",
		Message: "In order to send local weather, allow location permission.\n\nWe will only use this permission for giving local weather only",
		Icon:    "ic_location_on_black_24dp",
	}
)

func storageText(level permission.GrantLevel) string {
	if level == permission.Denied {
		return StorageDeniedText
	}
	return StorageGrantedText
}

func locationText(level permission.GrantLevel) string {
	switch level {
	case permission.Full:
		return LocationGrantedText
	case permission.Partial:
		return ForegroundLocationGrantedText
	default:
		return LocationDeniedText
	}
}
