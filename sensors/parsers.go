package sensors

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// setupDateLayout matches timestamps like "2025-07-29 15:21:23.854239" as
// written by the calibration tooling.
const setupDateLayout = "2006-01-02 15:04:05.999999"

// CalibrationInfo holds calibration metadata.
type CalibrationInfo struct {
	SetupDate                time.Time
	JSONVersion              int
	CalibratedBy             string
	CameraCalibrationVersion int
	IMUCalibrationVersion    int
}

// Calibration is a parsed calibration file: metadata plus per-camera
// intrinsics and pose.
type Calibration struct {
	Info    CalibrationInfo
	cameras map[string]map[string]calibrationValue
}

type calibrationValue struct {
	Value float64 `json:"value"`
}

type calibrationFile struct {
	CalibrationInfo struct {
		SetupDate                string `json:"setup_date"`
		JSONVersion              int    `json:"json_version"`
		CalibratedBy             string `json:"calibrated_by"`
		CameraCalibrationVersion int    `json:"camera_calibration_version"`
		IMUCalibrationVersion    int    `json:"imu_calibration_version"`
	} `json:"calibration_info"`
	Cameras map[string]map[string]calibrationValue `json:"cameras"`
}

// ParseCalibration parses calibration data from its JSON representation.
func ParseCalibration(data []byte) (*Calibration, error) {
	var file calibrationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing calibration data: %w", err)
	}

	info := CalibrationInfo{
		JSONVersion:              file.CalibrationInfo.JSONVersion,
		CalibratedBy:             file.CalibrationInfo.CalibratedBy,
		CameraCalibrationVersion: file.CalibrationInfo.CameraCalibrationVersion,
		IMUCalibrationVersion:    file.CalibrationInfo.IMUCalibrationVersion,
	}

	if raw := file.CalibrationInfo.SetupDate; raw != "" {
		t, err := time.Parse(setupDateLayout, raw)
		if err != nil {
			// Fall back to RFC 3339 for files written by newer tooling.
			t, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, fmt.Errorf("parsing setup_date %q: %w", raw, err)
			}
		}
		info.SetupDate = t
	}

	cameras := file.Cameras
	if cameras == nil {
		cameras = map[string]map[string]calibrationValue{}
	}

	return &Calibration{Info: info, cameras: cameras}, nil
}

// LoadCalibration reads and parses a calibration JSON file.
func LoadCalibration(path string) (*Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calibration file: %w", err)
	}
	return ParseCalibration(data)
}

// CameraIDs returns the calibrated camera identifiers in sorted order.
func (c *Calibration) CameraIDs() []string {
	ids := make([]string, 0, len(c.cameras))
	for id := range c.cameras {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Camera builds the Camera for the given identifier (e.g. "t1" or "rgb1").
// Missing calibration fields default to zero, matching the file format's
// sparse entries.
func (c *Calibration) Camera(id string) (Camera, error) {
	entry, ok := c.cameras[id]
	if !ok {
		return Camera{}, fmt.Errorf("no calibration entry for camera %q", id)
	}

	value := func(key string) float64 { return entry[key].Value }

	return Camera{
		Fx:    value("focal_length_x"),
		Fy:    value("focal_length_y"),
		Cx:    value("center_x"),
		Cy:    value("center_y"),
		Roll:  value("roll"),
		Pitch: value("pitch"),
		Yaw:   value("yaw"),
	}, nil
}
