package paramfile

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"nacagen/internal/namelist"
)

// DecodeHCL reads top-level HCL attributes as a parameter set, in source
// order. Integral numbers become integers.
//
//	profile = "63"
//	toc     = 0.15
//	dencode = 3
func DecodeHCL(src []byte, filename string) (*namelist.ParameterSet, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("HCL file %s: unexpected body type %T", filename, file.Body)
	}
	if len(body.Blocks) > 0 {
		b := body.Blocks[0]
		return nil, fmt.Errorf("%s: blocks are not supported, found %q", b.DefRange().String(), b.Type)
	}

	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	ps := namelist.NewParameterSet()
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %s: %w", attr.Name, diags)
		}
		if val.IsNull() {
			continue
		}
		v, err := ctyValue(val)
		if err != nil {
			return nil, fmt.Errorf("%s: parameter %s: %w", attr.SrcRange.String(), attr.Name, err)
		}
		ps.Set(attr.Name, v)
	}
	return ps, nil
}

func ctyValue(val cty.Value) (namelist.Value, error) {
	if !val.IsKnown() {
		return namelist.Value{}, fmt.Errorf("value is unknown")
	}
	switch val.Type() {
	case cty.Bool:
		return namelist.Bool(val.True()), nil
	case cty.String:
		return namelist.String(val.AsString()), nil
	case cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return namelist.Int(i), nil
			}
		}
		f, _ := bf.Float64()
		return namelist.Real(f), nil
	default:
		return namelist.Value{}, fmt.Errorf("unsupported type %s", val.Type().FriendlyName())
	}
}
