package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Errors"
	iotmodels "gitlab.com/gridsense1/iot.sensor_server/src/production/IOT.Models"
)

// Device firmware emits either a single live sample or a buffered batch after
// a reconnect. Both shapes carry the same field names; in a batch every field
// except device_id is a JSON array. The scalar-vs-array resolution happens
// here, once, in the column types; the store layer only ever sees flat rows.

var requiredFields = []string{
	"device_id",
	"device_timestamp",
	"temperature",
	"voltage",
	"current",
	"watts",
}

// stringColumn is a JSON field that is either one string or an array of
// strings. A scalar decodes as a length-1 column.
type stringColumn struct {
	values []string
	scalar bool
}

func (c *stringColumn) UnmarshalJSON(data []byte) error {
	d := bytes.TrimSpace(data)
	if len(d) > 0 && d[0] == '[' {
		return json.Unmarshal(d, &c.values)
	}
	var v string
	if err := json.Unmarshal(d, &v); err != nil {
		return err
	}
	c.values = []string{v}
	c.scalar = true
	return nil
}

// numberColumn is the numeric counterpart of stringColumn.
type numberColumn struct {
	values []float64
	scalar bool
}

func (c *numberColumn) UnmarshalJSON(data []byte) error {
	d := bytes.TrimSpace(data)
	if len(d) > 0 && d[0] == '[' {
		return json.Unmarshal(d, &c.values)
	}
	var v float64
	if err := json.Unmarshal(d, &v); err != nil {
		return err
	}
	c.values = []float64{v}
	c.scalar = true
	return nil
}

// Normalize turns one raw broker payload into zero or more reading drafts.
// It is pure: the caller performs the store write. Rejects carry one of the
// MalformedPayload, MissingFields or LengthMismatch codes and always come
// with zero drafts: a message is committed whole or not at all.
//
// The batch length is taken from device_timestamp; every metric field must
// resolve to a column of exactly that length. DeviceTimestamp values pass
// through verbatim and are never parsed as time.
func Normalize(payload []byte) ([]iotmodels.SensorReading, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedPayload, "payload is not a valid JSON object", err)
	}

	var missing []string
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.New(apperrors.CodeMissingFields,
			fmt.Sprintf("payload is missing required fields: %s", strings.Join(missing, ", ")))
	}

	var deviceID string
	if err := json.Unmarshal(fields["device_id"], &deviceID); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedPayload, "device_id is not a string", err)
	}

	var timestamps stringColumn
	if err := json.Unmarshal(fields["device_timestamp"], &timestamps); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeMalformedPayload, "device_timestamp has an invalid shape", err)
	}

	metrics := make(map[string]*numberColumn, 4)
	for _, name := range []string{"temperature", "voltage", "current", "watts"} {
		col := &numberColumn{}
		if err := json.Unmarshal(fields[name], col); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeMalformedPayload,
				fmt.Sprintf("%s has an invalid shape", name), err)
		}
		metrics[name] = col
	}

	n := len(timestamps.values)
	for name, col := range metrics {
		if len(col.values) != n {
			return nil, apperrors.New(apperrors.CodeLengthMismatch,
				fmt.Sprintf("%s has %d values, device_timestamp has %d", name, len(col.values), n))
		}
	}

	readings := make([]iotmodels.SensorReading, 0, n)
	for i := 0; i < n; i++ {
		readings = append(readings, iotmodels.SensorReading{
			DeviceID:        deviceID,
			DeviceTimestamp: timestamps.values[i],
			Temperature:     metrics["temperature"].values[i],
			Voltage:         metrics["voltage"].values[i],
			Current:         metrics["current"].values[i],
			Watts:           metrics["watts"].values[i],
		})
	}

	return readings, nil
}
