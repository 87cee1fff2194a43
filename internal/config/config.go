package config

import (
	"io/fs"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Contact Book"
	AppDirName  = "contactbook"
	LogFileName = "contactbook.log"
	Prompt      = ">>> "
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and the address book snapshot.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// TempFilePattern names the scratch file written before an atomic rename.
	TempFilePattern = ".contactbook-*.tmp"
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagData         = "data"
	FlagDemo         = "demo"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescConfig   = "Path to the YAML settings file"
	FlagDescData     = "Path to the JSON address book file (overrides the settings file)"
	FlagDescDemo     = "Start with a set of sample contacts"
	MsgVersionOutput = "%s version %s (commit %s, built %s) %s/%s\n"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultConfigFile = "contactbook.yml"
	DefaultDataFile   = "data.json"
	DefaultLanguage   = "en"
	DefaultReminder   = "-P1D"

	MinPhoneLength   = 6 // Phones of 5 characters or fewer are rejected.
	MinSearchLength  = 3
	NoBirthdayLegacy = "None" // Older snapshots wrote a missing birthday as this text.
	PhoneListOpen    = "["
	PhoneListClose   = "]"
	PhoneSeparator   = ", "
	RecordSeparator  = ", "
	LineSeparator    = "\n"
	ArgSeparator     = " "
	HoursPerDay      = 24
)

// SupportedLanguages defines the list of available reply languages (ISO 639-1).
var SupportedLanguages = []string{"en", "uk"}

// -----------------------------------------------------------------------------
// Command Prefixes
// -----------------------------------------------------------------------------

const (
	CmdHello    = "hello"
	CmdHelp     = "help"
	CmdAdd      = "add"
	CmdBirthday = "birthday"
	CmdWhen     = "when"
	CmdFind     = "find"
	CmdChange   = "change"
	CmdDelete   = "delete"
	CmdRemove   = "remove"
	CmdPhone    = "phone"
	CmdShowAll  = "show all"
	CmdSave     = "save"
	CmdLoad     = "load"
	CmdExport   = "export"
	CmdImport   = "import"
	CmdCalendar = "calendar"
	CmdExit     = "exit"
	CmdClose    = "close"
	CmdGoodBye  = "good bye"
	CmdUnknown  = "unknown"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Contact Book//Calendar//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "contactbook"
	ICalYearly    = "FREQ=YEARLY"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRRule       = "RRULE"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardVersion = "4.0"

	// StubVCalendar is the minimal valid iCalendar object used when no contact has a birthday.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	FallbackSummary = "Birthday: %s"
)

// -----------------------------------------------------------------------------
// Data Formats & UID Generation
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday renders a birthday, e.g. "25 November 2003".
	DateFormatBirthday = "02 January 2006"
	// DateLayoutBirthday parses one or two day digits; month names match in any letter case.
	DateLayoutBirthday = "2 January 2006"

	// Date layouts used for vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	UIDHashLength   = 16
	UIDSalt         = "contactbook-v1-"
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyGreeting        = "greeting"
	TKeyIncorrect       = "err_incorrect"        // Requires Command
	TKeyNameNotFound    = "err_name_not_found"   // No data
	TKeyQueryTooShort   = "err_query_too_short"  // Requires Min
	TKeyContactExists   = "err_contact_exists"   // Requires Name
	TKeyPhoneNotInList  = "err_phone_not_listed" // Requires Phone
	TKeyNoDigits        = "err_no_digits"        // Requires Name
	TKeySaveFailed      = "err_save_failed"      // Requires Path
	TKeyLoadFailed      = "err_load_failed"      // Requires Path
	TKeyExportFailed    = "err_export_failed"    // Requires Path
	TKeyImportFailed    = "err_import_failed"    // Requires Path
	TKeyCalendarFailed  = "err_calendar_failed"  // Requires Path
	TKeyContactAdded    = "contact_added"        // Requires Name, Phone
	TKeyPhoneAdded      = "phone_added"          // Requires Name, Phone
	TKeyPhoneChanged    = "phone_changed"        // Requires Name, Old, New
	TKeyPhoneDeleted    = "phone_deleted"        // Requires Name, Phone
	TKeyContactRemoved  = "contact_removed"      // Requires Name
	TKeyShowPhone       = "show_phone"           // Requires Name, Phones
	TKeyNoContacts      = "no_contacts"
	TKeyPageHeader      = "page_header"      // Requires Page
	TKeyBirthdayAdded   = "birthday_added"   // Requires Name, Birthday
	TKeyNothingFound    = "nothing_found"    // Requires Query
	TKeyDaysToBirthday  = "days_to_birthday" // Requires Name, Days
	TKeyBirthdayToday   = "birthday_today"   // Requires Name
	TKeyNoBirthday      = "no_birthday"      // Requires Name
	TKeySaved           = "saved"            // Requires Path
	TKeyLoaded          = "loaded"           // Requires Path, Count
	TKeyExported        = "exported"         // Requires Path, Count
	TKeyImported        = "imported"         // Requires Path, Added, Skipped
	TKeyCalendarWritten = "calendar_written" // Requires Path, Count
	TKeyGoodBye         = "good_bye"
	TKeyUnknownCommand  = "unknown_command"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidName       = "invalid contact name"
	ErrPhoneTooShort     = "phone number must contain more than 5 digits"
	ErrBirthdayFormat    = "birthday must look like 01 January 2002"
	ErrPhoneNotFound     = "phone number not in list"
	ErrContactExists     = "contact already exists"
	ErrContactNotFound   = "contact not found"
	ErrQueryTooShort     = "search parameter should be at least 3 symbols"
	ErrInvalidPageSize   = "page size must be a positive number"
	ErrMalformedSnapshot = "malformed address book snapshot"
	ErrMissingArgument   = "missing command argument"
	ErrBadArgument       = "malformed command argument"
	ErrStorePathEmpty    = "configuration error: storage path is empty"
	ErrStoreRead         = "failed to read address book file"
	ErrStoreWrite        = "failed to write address book file"
	ErrStoreRename       = "failed to replace address book file"
	ErrVCardParse        = "failed to parse vCard stream"
	ErrVCardEncode       = "failed to encode vCard data"
	ErrICalEncode        = "failed to encode iCalendar data"
	ErrDateParse         = "unable to parse date"
	ErrConfigRead        = "failed to read settings file"
	ErrConfigDecode      = "failed to decode settings file"
	ErrConfigDefaults    = "failed to apply settings defaults"
	ErrLanguage          = "unsupported language"
	ErrReminder          = "reminder must be an ISO 8601 duration such as -P1D"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrCreateDir         = "could not create app cache dir"
	ErrAppFailed         = "application failed unexpectedly"
	ErrReadInput         = "failed to read input"
	ErrWriteOutput       = "failed to write output"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrUnhandled         = "unhandled command error"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, leaving command loop"
	MsgInputClosed    = "Input closed, leaving command loop"
	MsgCommand        = "Command dispatched"
	MsgCommandFailed  = "Command failed"
	MsgBookSaved      = "Address book saved"
	MsgBookLoaded     = "Address book loaded"
	MsgAutoloadFailed = "Autoload failed, starting with an empty book"
	MsgSettingsLoaded = "Settings loaded"
	MsgSettingsAbsent = "No settings file, using defaults"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedContact = "Skipping contact"
	MsgVCardExported  = "vCards exported"
	MsgVCardImported  = "vCards imported"
	MsgGenSuccess     = "Calendar generation successful"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgDemoSeeded     = "Demo contacts seeded"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyCount     = "count"
	LogKeySkipped   = "skipped"
	LogKeySizeBytes = "size_bytes"
	LogKeyPath      = "path"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_contacts"
	LogKeyFound     = "birthdays_found"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain      = "main"
	CompStorage   = "storage"
	CompExchange  = "exchange"
	CompAssistant = "assistant"
	CompSettings  = "settings"
	CompI18n      = "i18n"
)
