package boltstore

import (
	"bytes"
	"encoding/gob"

	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

func init() {
	gob.Register(gamedb.Object{})
	gob.Register(gamedb.WearState{})
	gob.Register(gamedb.GrowthState{})
	gob.Register(gamedb.GrowthStage{})
	gob.Register(gamedb.Feature{})
	gob.Register(gamedb.Channel{})
}

// encodeObject serializes an Object to bytes using gob.
func encodeObject(obj *gamedb.Object) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeObject deserializes bytes back into an Object.
func decodeObject(data []byte) (*gamedb.Object, error) {
	var obj gamedb.Object
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// encodeChannel serializes a Channel to bytes using gob.
func encodeChannel(ch *gamedb.Channel) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ch); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeChannel deserializes bytes back into a Channel.
func decodeChannel(data []byte) (*gamedb.Channel, error) {
	var ch gamedb.Channel
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&ch); err != nil {
		return nil, err
	}
	return &ch, nil
}
