package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/percept-vision/percept/sensors"
)

type calibSummary struct {
	SetupDate    string                    `json:"setup_date"`
	CalibratedBy string                    `json:"calibrated_by"`
	JSONVersion  int                       `json:"json_version"`
	Cameras      map[string]sensors.Camera `json:"cameras"`
}

var calibCmd = &cobra.Command{
	Use:   "calib [flags] FILE",
	Short: "Inspect a camera calibration file",
	Long: `Parse a calibration JSON file and print its metadata and per-camera
intrinsics.

Examples:
  percept calib calibration.json
  percept calib calibration.json --camera t1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calib, err := sensors.LoadCalibration(args[0])
		if err != nil {
			return err
		}

		cameraID, _ := cmd.Flags().GetString("camera")
		if cameraID != "" {
			cam, err := calib.Camera(cameraID)
			if err != nil {
				return err
			}
			encoded, err := json.MarshalIndent(cam, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode camera: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return err
		}

		summary := calibSummary{
			SetupDate:    calib.Info.SetupDate.Format("2006-01-02 15:04:05"),
			CalibratedBy: calib.Info.CalibratedBy,
			JSONVersion:  calib.Info.JSONVersion,
			Cameras:      make(map[string]sensors.Camera),
		}
		for _, id := range calib.CameraIDs() {
			cam, err := calib.Camera(id)
			if err != nil {
				return err
			}
			summary.Cameras[id] = cam
		}

		encoded, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return err
	},
}

func init() {
	rootCmd.AddCommand(calibCmd)
	calibCmd.Flags().StringP("camera", "c", "", "print a single camera's intrinsics")
}
