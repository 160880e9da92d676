package repository

import "errors"

var ErrNilDataset = errors.New("dataset is nil")
