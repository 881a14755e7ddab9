// Copyright (2015) Sandia Corporation.
// Under the terms of Contract DE-AC04-94AL85000 with Sandia Corporation,
// the U.S. Government retains certain rights in this software.

package protocol

import "encoding/xml"

// The dispatcher only ever needs to read three element shapes out of
// the daemon's XML payloads: <thread>, its <frame> children, and the
// <value> wrapper returned by an evaluate reply. Anything else is
// rejected rather than silently accepted, per the codec's "restrict
// parsing to the element and attribute names actually consumed" rule.

type frameXML struct {
	ID   string `xml:"id,attr"`
	File string `xml:"file,attr"`
	Line string `xml:"line,attr"`
	Name string `xml:"name,attr"`
}

type threadXML struct {
	ID         string     `xml:"id,attr"`
	Name       string     `xml:"name,attr"`
	StopReason string     `xml:"stop_reason,attr"`
	Frames     []frameXML `xml:"frame"`
}

type threadsEnvelope struct {
	XMLName xml.Name
	Threads []threadXML `xml:"thread"`
}

type valueXML struct {
	Value string `xml:"value,attr"`
}

type valueEnvelope struct {
	XMLName xml.Name
	Values  []valueXML `xml:"value"`
}

// parseThreads accepts either a bare <thread>...</thread> document or
// an <xml> root element containing one or more <thread> children. Any
// other root element is rejected.
func parseThreads(payload string) ([]threadXML, error) {
	var env threadsEnvelope
	if err := xml.Unmarshal([]byte(payload), &env); err != nil {
		return nil, &ProtocolError{Reason: "unparseable thread xml: " + err.Error()}
	}

	if env.XMLName.Local == "thread" {
		var t threadXML
		if err := xml.Unmarshal([]byte(payload), &t); err != nil {
			return nil, &ProtocolError{Reason: "unparseable thread xml: " + err.Error()}
		}
		return []threadXML{t}, nil
	}

	if env.XMLName.Local != "xml" {
		return nil, &ProtocolError{Reason: "unexpected root element <" + env.XMLName.Local + ">"}
	}
	if len(env.Threads) == 0 {
		return nil, &ProtocolError{Reason: "no <thread> elements in payload"}
	}
	return env.Threads, nil
}

// parseValue extracts the single <value value="..."> result of an
// evaluate reply, given either as a bare <value> document or as the
// first <value> child of an <xml> root. Any other root element is
// rejected.
func parseValue(payload string) (string, error) {
	var env valueEnvelope
	if err := xml.Unmarshal([]byte(payload), &env); err != nil {
		return "", &ProtocolError{Reason: "unparseable value xml: " + err.Error()}
	}

	if env.XMLName.Local == "value" {
		var v valueXML
		if err := xml.Unmarshal([]byte(payload), &v); err != nil {
			return "", &ProtocolError{Reason: "unparseable value xml: " + err.Error()}
		}
		return v.Value, nil
	}

	if env.XMLName.Local != "xml" {
		return "", &ProtocolError{Reason: "unexpected root element <" + env.XMLName.Local + ">"}
	}
	if len(env.Values) == 0 {
		return "", &ProtocolError{Reason: "no <value> element in payload"}
	}
	return env.Values[0].Value, nil
}
