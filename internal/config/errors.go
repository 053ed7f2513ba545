package config

import "errors"

var (
	errConfigOption   = errors.New("config option error")
	errReadConfig     = errors.New("reading config file failed")
	errWriteConfig    = errors.New("writing default config failed")
	errDecodeSettings = errors.New("decoding settings failed")
	errUnknownSetting = errors.New("unknown setting")
	errInvalidSetting = errors.New("invalid setting")
	errInvalidOption  = errors.New("invalid option")

	// ErrUnknownSetting is returned by ParseSetting for keys that do not
	// name a setting.
	ErrUnknownSetting = errUnknownSetting

	// ErrInvalidSetting is returned when a setting value is out of range.
	ErrInvalidSetting = errInvalidSetting
)
