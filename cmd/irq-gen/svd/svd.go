// Package svd decodes the parts of a CMSIS System View Description that
// describe the interrupt controller.
package svd

import (
	"encoding/xml"
	"strconv"
	"strings"
)

type Integer uint64

func (h *Integer) UnmarshalXML(d *xml.Decoder, start xml.StartElement) (err error) {
	var v string
	if err = d.DecodeElement(&v, &start); err != nil {
		return err
	}

	v = strings.ToLower(strings.TrimSpace(v))
	var value uint64
	if strings.HasPrefix(v, "0x") {
		value, err = strconv.ParseUint(strings.TrimPrefix(v, "0x"), 16, 64)
	} else {
		value, err = strconv.ParseUint(v, 10, 64)
	}

	if err != nil {
		return err
	}
	*h = Integer(value)
	return nil
}

type DeviceElement struct {
	Name        string             `xml:"name"`
	Series      string             `xml:"series"`
	CPU         CPUElement         `xml:"cpu"`
	Peripherals PeripheralsElement `xml:"peripherals"`
}

type CPUElement struct {
	Name             string  `xml:"name"`
	NVICPriorityBits Integer `xml:"nvicPrioBits"`
}

type PeripheralsElement struct {
	Elements []PeripheralElement `xml:"peripheral"`
}

type PeripheralElement struct {
	Name        string             `xml:"name"`
	Interrupts  []InterruptElement `xml:"interrupt"`
	DerivedFrom string             `xml:"derivedFrom,attr"`
}

type InterruptElement struct {
	Name        string  `xml:"name"`
	Description string  `xml:"description"`
	Value       Integer `xml:"value"`
}
