// Package hclconfig is the HCL implementation of the config.Loader
// interface. The file format is two optional blocks of overrides:
//
//	runtime {
//	  model_file   = "dnn_model_2_0_lite.onnx"
//	  search_paths = ["D:/kinect/runtime"]
//	  sdk_dir      = "E:/Azure Kinect Body Tracking SDK/tools"
//	}
//
//	tracker {
//	  processing_mode    = "gpu"
//	  gpu_device_id      = 0
//	  sensor_orientation = "default"
//	}
package hclconfig

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/trackgate/internal/config"
	"github.com/vk/trackgate/internal/ctxlog"
)

// Loader parses trackgate HCL configuration files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates an HCL config loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "runtime"},
		{Type: "tracker"},
	},
}

var runtimeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "model_file"},
		{Name: "search_paths"},
		{Name: "sdk_dir"},
	},
}

var trackerSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "processing_mode"},
		{Name: "gpu_device_id"},
		{Name: "sensor_orientation"},
	},
}

// Load implements config.Loader. Overrides from the file are applied on top
// of config.Default and the merged model is validated.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	model := config.Default()
	if path == "" {
		return model, nil
	}
	logger := ctxlog.FromContext(ctx)

	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}
	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("reading %s: %w", path, diags)
	}

	for _, block := range content.Blocks {
		var err error
		switch block.Type {
		case "runtime":
			err = decodeRuntime(block.Body, &model.Runtime)
		case "tracker":
			err = decodeTracker(block.Body, &model.Tracker)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("Configuration loaded.", "path", path)
	return model, nil
}

func decodeRuntime(body hcl.Body, rc *config.RuntimeConfig) error {
	content, diags := body.Content(runtimeSchema)
	if diags.HasErrors() {
		return fmt.Errorf("runtime block: %w", diags)
	}
	if err := decodeAttr(content.Attributes, "model_file", cty.String, &rc.ModelFile); err != nil {
		return err
	}
	if err := decodeAttr(content.Attributes, "search_paths", cty.List(cty.String), &rc.SearchPaths); err != nil {
		return err
	}
	return decodeAttr(content.Attributes, "sdk_dir", cty.String, &rc.SDKDir)
}

func decodeTracker(body hcl.Body, tc *config.TrackerConfig) error {
	content, diags := body.Content(trackerSchema)
	if diags.HasErrors() {
		return fmt.Errorf("tracker block: %w", diags)
	}
	if err := decodeAttr(content.Attributes, "processing_mode", cty.String, &tc.ProcessingMode); err != nil {
		return err
	}
	if err := decodeAttr(content.Attributes, "gpu_device_id", cty.Number, &tc.GPUDeviceID); err != nil {
		return err
	}
	return decodeAttr(content.Attributes, "sensor_orientation", cty.String, &tc.SensorOrientation)
}

// decodeAttr evaluates an attribute, converts it to the wanted cty type and
// stores it in target. Absent attributes leave the target's default alone.
func decodeAttr(attrs hcl.Attributes, name string, want cty.Type, target any) error {
	attr, ok := attrs[name]
	if !ok {
		return nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("evaluating %s: %w", name, diags)
	}
	val, err := convert.Convert(val, want)
	if err != nil {
		return fmt.Errorf("attribute %s: %w", name, err)
	}
	if val.IsNull() {
		return nil
	}
	if err := gocty.FromCtyValue(val, target); err != nil {
		return fmt.Errorf("attribute %s: %w", name, err)
	}
	return nil
}
