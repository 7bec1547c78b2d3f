// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.6
// 	protoc        (unknown)
// source: inference.proto

package proto

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type ErrorKind int32

const (
	ErrorKind_ERROR_KIND_UNSPECIFIED ErrorKind = 0
	ErrorKind_MODEL_ERROR            ErrorKind = 1
	ErrorKind_TIMEOUT                ErrorKind = 2
	ErrorKind_RESOURCE_EXHAUSTED     ErrorKind = 3
)

// Enum value maps for ErrorKind.
var (
	ErrorKind_name = map[int32]string{
		0: "ERROR_KIND_UNSPECIFIED",
		1: "MODEL_ERROR",
		2: "TIMEOUT",
		3: "RESOURCE_EXHAUSTED",
	}
	ErrorKind_value = map[string]int32{
		"ERROR_KIND_UNSPECIFIED": 0,
		"MODEL_ERROR":            1,
		"TIMEOUT":                2,
		"RESOURCE_EXHAUSTED":     3,
	}
)

func (x ErrorKind) Enum() *ErrorKind {
	p := new(ErrorKind)
	*p = x
	return p
}

func (x ErrorKind) String() string {
	return protoimpl.X.EnumStringOf(x.Descriptor(), protoreflect.EnumNumber(x))
}

func (ErrorKind) Descriptor() protoreflect.EnumDescriptor {
	return file_inference_proto_enumTypes[0].Descriptor()
}

func (ErrorKind) Type() protoreflect.EnumType {
	return &file_inference_proto_enumTypes[0]
}

func (x ErrorKind) Number() protoreflect.EnumNumber {
	return protoreflect.EnumNumber(x)
}

// Deprecated: Use ErrorKind.Descriptor instead.
func (ErrorKind) EnumDescriptor() ([]byte, []int) {
	return file_inference_proto_rawDescGZIP(), []int{0}
}

type GenerateResponse_Status int32

const (
	GenerateResponse_STATUS_UNSPECIFIED GenerateResponse_Status = 0
	GenerateResponse_SUCCESS            GenerateResponse_Status = 1
	GenerateResponse_FAILURE            GenerateResponse_Status = 2
)

// Enum value maps for GenerateResponse_Status.
var (
	GenerateResponse_Status_name = map[int32]string{
		0: "STATUS_UNSPECIFIED",
		1: "SUCCESS",
		2: "FAILURE",
	}
	GenerateResponse_Status_value = map[string]int32{
		"STATUS_UNSPECIFIED": 0,
		"SUCCESS":            1,
		"FAILURE":            2,
	}
)

func (x GenerateResponse_Status) Enum() *GenerateResponse_Status {
	p := new(GenerateResponse_Status)
	*p = x
	return p
}

func (x GenerateResponse_Status) String() string {
	return protoimpl.X.EnumStringOf(x.Descriptor(), protoreflect.EnumNumber(x))
}

func (GenerateResponse_Status) Descriptor() protoreflect.EnumDescriptor {
	return file_inference_proto_enumTypes[1].Descriptor()
}

func (GenerateResponse_Status) Type() protoreflect.EnumType {
	return &file_inference_proto_enumTypes[1]
}

func (x GenerateResponse_Status) Number() protoreflect.EnumNumber {
	return protoreflect.EnumNumber(x)
}

// Deprecated: Use GenerateResponse_Status.Descriptor instead.
func (GenerateResponse_Status) EnumDescriptor() ([]byte, []int) {
	return file_inference_proto_rawDescGZIP(), []int{1, 0}
}

type GenerateRequest struct {
	state protoimpl.MessageState `protogen:"open.v1"`
	// Job id, carried for tracing only.
	JobId             string  `protobuf:"bytes,1,opt,name=job_id,json=jobId,proto3" json:"job_id,omitempty"`
	Prompt            string  `protobuf:"bytes,2,opt,name=prompt,proto3" json:"prompt,omitempty"`
	GuidanceScale     float32 `protobuf:"fixed32,3,opt,name=guidance_scale,json=guidanceScale,proto3" json:"guidance_scale,omitempty"`
	NumInferenceSteps int32   `protobuf:"varint,4,opt,name=num_inference_steps,json=numInferenceSteps,proto3" json:"num_inference_steps,omitempty"`
	Width             int32   `protobuf:"varint,5,opt,name=width,proto3" json:"width,omitempty"`
	Height            int32   `protobuf:"varint,6,opt,name=height,proto3" json:"height,omitempty"`
	// Negative seed asks the model process to generate one.
	Seed          int64 `protobuf:"varint,7,opt,name=seed,proto3" json:"seed,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *GenerateRequest) Reset() {
	*x = GenerateRequest{}
	mi := &file_inference_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *GenerateRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*GenerateRequest) ProtoMessage() {}

func (x *GenerateRequest) ProtoReflect() protoreflect.Message {
	mi := &file_inference_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use GenerateRequest.ProtoReflect.Descriptor instead.
func (*GenerateRequest) Descriptor() ([]byte, []int) {
	return file_inference_proto_rawDescGZIP(), []int{0}
}

func (x *GenerateRequest) GetJobId() string {
	if x != nil {
		return x.JobId
	}
	return ""
}

func (x *GenerateRequest) GetPrompt() string {
	if x != nil {
		return x.Prompt
	}
	return ""
}

func (x *GenerateRequest) GetGuidanceScale() float32 {
	if x != nil {
		return x.GuidanceScale
	}
	return 0
}

func (x *GenerateRequest) GetNumInferenceSteps() int32 {
	if x != nil {
		return x.NumInferenceSteps
	}
	return 0
}

func (x *GenerateRequest) GetWidth() int32 {
	if x != nil {
		return x.Width
	}
	return 0
}

func (x *GenerateRequest) GetHeight() int32 {
	if x != nil {
		return x.Height
	}
	return 0
}

func (x *GenerateRequest) GetSeed() int64 {
	if x != nil {
		return x.Seed
	}
	return 0
}

type GenerateResponse struct {
	state  protoimpl.MessageState  `protogen:"open.v1"`
	JobId  string                  `protobuf:"bytes,1,opt,name=job_id,json=jobId,proto3" json:"job_id,omitempty"`
	Status GenerateResponse_Status `protobuf:"varint,2,opt,name=status,proto3,enum=renderq.inference.v1.GenerateResponse_Status" json:"status,omitempty"`
	// Set on SUCCESS.
	ImageData []byte `protobuf:"bytes,3,opt,name=image_data,json=imageData,proto3" json:"image_data,omitempty"`
	UsedSeed  int64  `protobuf:"varint,4,opt,name=used_seed,json=usedSeed,proto3" json:"used_seed,omitempty"`
	// Set on FAILURE.
	ErrorKind     ErrorKind `protobuf:"varint,5,opt,name=error_kind,json=errorKind,proto3,enum=renderq.inference.v1.ErrorKind" json:"error_kind,omitempty"`
	ErrorMessage  string    `protobuf:"bytes,6,opt,name=error_message,json=errorMessage,proto3" json:"error_message,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *GenerateResponse) Reset() {
	*x = GenerateResponse{}
	mi := &file_inference_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *GenerateResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*GenerateResponse) ProtoMessage() {}

func (x *GenerateResponse) ProtoReflect() protoreflect.Message {
	mi := &file_inference_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use GenerateResponse.ProtoReflect.Descriptor instead.
func (*GenerateResponse) Descriptor() ([]byte, []int) {
	return file_inference_proto_rawDescGZIP(), []int{1}
}

func (x *GenerateResponse) GetJobId() string {
	if x != nil {
		return x.JobId
	}
	return ""
}

func (x *GenerateResponse) GetStatus() GenerateResponse_Status {
	if x != nil {
		return x.Status
	}
	return GenerateResponse_STATUS_UNSPECIFIED
}

func (x *GenerateResponse) GetImageData() []byte {
	if x != nil {
		return x.ImageData
	}
	return nil
}

func (x *GenerateResponse) GetUsedSeed() int64 {
	if x != nil {
		return x.UsedSeed
	}
	return 0
}

func (x *GenerateResponse) GetErrorKind() ErrorKind {
	if x != nil {
		return x.ErrorKind
	}
	return ErrorKind_ERROR_KIND_UNSPECIFIED
}

func (x *GenerateResponse) GetErrorMessage() string {
	if x != nil {
		return x.ErrorMessage
	}
	return ""
}

var File_inference_proto protoreflect.FileDescriptor

const file_inference_proto_rawDesc = "" +
	"\n" +
	"\x0finference.proto\x12\x14renderq.inference.v1\"\xd9\x01\n" +
	"\x0fGenerateRequest\x12\x15\n" +
	"\x06job_id\x18\x01 \x01(\tR\x05jobId\x12\x16\n" +
	"\x06prompt\x18\x02 \x01(\tR\x06prompt\x12%\n" +
	"\x0eguidance_scale\x18\x03 \x01(\x02R\rguidanceScale\x12.\n" +
	"\x13num_inference_steps\x18\x04 \x01(\x05R\x11numInferenceSteps\x12\x14\n" +
	"\x05width\x18\x05 \x01(\x05R\x05width\x12\x16\n" +
	"\x06height\x18\x06 \x01(\x05R\x06height\x12\x12\n" +
	"\x04seed\x18\a \x01(\x03R\x04seed\"\xcd\x02\n" +
	"\x10GenerateResponse\x12\x15\n" +
	"\x06job_id\x18\x01 \x01(\tR\x05jobId\x12E\n" +
	"\x06status\x18\x02 \x01(\x0e2-.renderq.inference.v1.GenerateResponse.StatusR\x06status\x12\x1d\n" +
	"\n" +
	"image_data\x18\x03 \x01(\fR\timageData\x12\x1b\n" +
	"\tused_seed\x18\x04 \x01(\x03R\busedSeed\x12>\n" +
	"\n" +
	"error_kind\x18\x05 \x01(\x0e2\x1f.renderq.inference.v1.ErrorKindR\terrorKind\x12#\n" +
	"\rerror_message\x18\x06 \x01(\tR\ferrorMessage\":\n" +
	"\x06Status\x12\x16\n" +
	"\x12STATUS_UNSPECIFIED\x10\x00\x12\v\n" +
	"\aSUCCESS\x10\x01\x12\v\n" +
	"\aFAILURE\x10\x02*]\n" +
	"\tErrorKind\x12\x1a\n" +
	"\x16ERROR_KIND_UNSPECIFIED\x10\x00\x12\x0f\n" +
	"\vMODEL_ERROR\x10\x01\x12\v\n" +
	"\aTIMEOUT\x10\x02\x12\x16\n" +
	"\x12RESOURCE_EXHAUSTED\x10\x032f\n" +
	"\tInference\x12Y\n" +
	"\bGenerate\x12%.renderq.inference.v1.GenerateRequest\x1a&.renderq.inference.v1.GenerateResponseB6Z4github.com/mvelickovic/renderq/internal/shared/protob\x06proto3"

var (
	file_inference_proto_rawDescOnce sync.Once
	file_inference_proto_rawDescData []byte
)

func file_inference_proto_rawDescGZIP() []byte {
	file_inference_proto_rawDescOnce.Do(func() {
		file_inference_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_inference_proto_rawDesc), len(file_inference_proto_rawDesc)))
	})
	return file_inference_proto_rawDescData
}

var file_inference_proto_enumTypes = make([]protoimpl.EnumInfo, 2)
var file_inference_proto_msgTypes = make([]protoimpl.MessageInfo, 2)
var file_inference_proto_goTypes = []any{
	(ErrorKind)(0),               // 0: renderq.inference.v1.ErrorKind
	(GenerateResponse_Status)(0), // 1: renderq.inference.v1.GenerateResponse.Status
	(*GenerateRequest)(nil),      // 2: renderq.inference.v1.GenerateRequest
	(*GenerateResponse)(nil),     // 3: renderq.inference.v1.GenerateResponse
}
var file_inference_proto_depIdxs = []int32{
	1, // 0: renderq.inference.v1.GenerateResponse.status:type_name -> renderq.inference.v1.GenerateResponse.Status
	0, // 1: renderq.inference.v1.GenerateResponse.error_kind:type_name -> renderq.inference.v1.ErrorKind
	2, // 2: renderq.inference.v1.Inference.Generate:input_type -> renderq.inference.v1.GenerateRequest
	3, // 3: renderq.inference.v1.Inference.Generate:output_type -> renderq.inference.v1.GenerateResponse
	3, // [3:4] is the sub-list for method output_type
	2, // [2:3] is the sub-list for method input_type
	2, // [2:2] is the sub-list for extension type_name
	2, // [2:2] is the sub-list for extension extendee
	0, // [0:2] is the sub-list for field type_name
}

func init() { file_inference_proto_init() }
func file_inference_proto_init() {
	if File_inference_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_inference_proto_rawDesc), len(file_inference_proto_rawDesc)),
			NumEnums:      2,
			NumMessages:   2,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_inference_proto_goTypes,
		DependencyIndexes: file_inference_proto_depIdxs,
		EnumInfos:         file_inference_proto_enumTypes,
		MessageInfos:      file_inference_proto_msgTypes,
	}.Build()
	File_inference_proto = out.File
	file_inference_proto_goTypes = nil
	file_inference_proto_depIdxs = nil
}
