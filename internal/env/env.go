package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var ErrMissing = errors.New("could not find environment value")

func GetString(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissing, key)
	}

	return value, nil
}

func GetInt(key string) (int, error) {
	valueStr, err := GetString(key)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("could not convert %s from string to int: %v", key, err)
	}

	return value, nil
}

func GetBool(key string) (bool, error) {
	valueStr, err := GetString(key)
	if err != nil {
		return false, err
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("could not convert %s from string to bool: %v", key, err)
	}

	return value, nil
}

// GetDuration accepts anything time.ParseDuration does, e.g. "90s" or "5m".
func GetDuration(key string) (time.Duration, error) {
	valueStr, err := GetString(key)
	if err != nil {
		return 0, err
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("could not convert %s from string to duration: %v", key, err)
	}

	return value, nil
}

// The Or variants only fall back when the key is unset. A value that does not
// parse is still an error.

func GetStringOr(key, fallback string) string {
	value, err := GetString(key)
	if err != nil {
		return fallback
	}
	return value
}

func GetIntOr(key string, fallback int) (int, error) {
	value, err := GetInt(key)
	if errors.Is(err, ErrMissing) {
		return fallback, nil
	}
	return value, err
}

func GetBoolOr(key string, fallback bool) (bool, error) {
	value, err := GetBool(key)
	if errors.Is(err, ErrMissing) {
		return fallback, nil
	}
	return value, err
}

func GetDurationOr(key string, fallback time.Duration) (time.Duration, error) {
	value, err := GetDuration(key)
	if errors.Is(err, ErrMissing) {
		return fallback, nil
	}
	return value, err
}
